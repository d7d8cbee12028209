package report

import "github.com/hrutik5321/leaguedash/internal/db"

// PositionTypes is the fixed list offered by the position filter.
var PositionTypes = []string{"Forward", "Midfielder", "Defender"}

func playerReports() []*Report {
	return []*Report{
		{
			ID:      "players/top-scorers",
			Section: Players,
			Title:   "Top Goal Scorers",
			Params: []Param{
				{
					Name:  "teams",
					Label: "Select Team(s)",
					Kind:  Multi,
					OptionsQuery: func(Values) db.Statement {
						return db.Statement{SQL: "SELECT name FROM Teams_Owner_Managed_Located;"}
					},
				},
			},
			Build: func(v Values) (db.Statement, error) {
				var p placeholders
				return p.statement(`SELECT P.name Player, T.name Team, COUNT(G.id) Goals
FROM Goals_Scored G
INNER JOIN Players_Plays_in_Plays_for P
ON G.player_id = P.id
INNER JOIN Teams_Owner_Managed_Located T
ON P.t_id = T.id
WHERE T.name IN (` + p.in(v.List("teams")) + `)
GROUP BY G.player_id, P.name, T.name
ORDER BY Goals DESC;`), nil
			},
		},
		{
			ID:      "players/hattricks",
			Section: Players,
			Title:   "Players With Most Hattricks",
			Build: static(`SELECT P.name Player, T.name Team, SUM(H.Hattricks) Hattricks
FROM Players_Plays_in_Plays_for P
INNER JOIN Teams_Owner_Managed_Located T
ON P.t_id = T.id
INNER JOIN (
SELECT G.player_id id, G.match_id match_id, (COUNT(G.id)/3) Hattricks
FROM Goals_Scored G
GROUP BY G.player_id, G.match_id
HAVING COUNT(G.id) >= 3
) H
ON H.id = P.id
GROUP BY Player, Team
ORDER BY Hattricks DESC;`),
		},
		{
			ID:      "players/by-position",
			Section: Players,
			Title:   "Goal Scorers By Position And Nationality",
			Params: []Param{
				{Name: "position", Label: "Choose a position", Kind: Choice, Options: PositionTypes},
				{
					Name:      "positions",
					Label:     "Select Field Position(s)",
					Kind:      Multi,
					DependsOn: []string{"position"},
					OptionsQuery: func(v Values) db.Statement {
						return db.Statement{
							SQL:  "SELECT pos FROM Positions WHERE pos_type = $1;",
							Args: []any{v.Get("position")},
						}
					},
				},
			},
			Build: func(v Values) (db.Statement, error) {
				var p placeholders
				return p.statement(`SELECT P.nationality country, COUNT(distinct G.player_id) goalScoringPlayers,
COUNT(G.id) totalGoalsScoredByPosition
FROM Players_Plays_in_Plays_for P
INNER JOIN Positions Pos
ON P.pos = Pos.pos
INNER JOIN Goals_Scored G
ON G.player_id = P.id
WHERE Pos.pos_type = ` + p.add(v.Get("position")) + `
AND Pos.pos IN (` + p.in(v.List("positions")) + `)
GROUP BY country
ORDER BY totalGoalsScoredByPosition DESC;`), nil
			},
		},
		{
			ID:      "players/winners",
			Section: Players,
			Title:   "Players With Maximum Winners",
			Build: static(`SELECT P.name player, T.name team, SUM(CASE WHEN winner THEN 1 ELSE 0 END) cntWinners,
CAST(COUNT(G.id) AS decimal) totalGoals,
100*ROUND(SUM(CASE WHEN winner THEN 1.0 ELSE 0.0 END)/CAST(COUNT(G.id) AS decimal), 4) winnerPercentage
FROM Goals_Scored G
INNER JOIN Players_Plays_In_Plays_for P
ON G.player_id = P.id
INNER JOIN Teams_Owner_Managed_Located T
ON P.T_id = T.id
GROUP BY G.player_id, P.name, T.name
HAVING COUNT(G.id) > 1
ORDER BY cntWinners DESC
LIMIT 20;`),
			Formats: percent("winnerpercentage"),
		},
		{
			ID:      "players/equalizers",
			Section: Players,
			Title:   "Players With Maximum Equalizers",
			Build: static(`SELECT P.name player, T.name team, SUM(CASE WHEN equalizer THEN 1 ELSE 0 END) cntEqualizers,
CAST(COUNT(G.id) AS decimal) totalGoals,
100*ROUND(SUM(CASE WHEN equalizer THEN 1.0 ELSE 0.0 END)/CAST(COUNT(G.id) AS decimal), 4) equalizerPercentage
FROM Goals_Scored G
INNER JOIN Players_Plays_In_Plays_for P
ON G.player_id = P.id
INNER JOIN Teams_Owner_Managed_Located T
ON P.T_id = T.id
GROUP BY G.player_id, P.name, T.name
HAVING COUNT(G.id) > 1
ORDER BY cntEqualizers DESC
LIMIT 20;`),
			Formats: percent("equalizerpercentage"),
		},
		{
			ID:      "players/older-scorers",
			Section: Players,
			Title:   "Goalscorers Above Certain Age",
			Params: []Param{
				{Name: "min_age", Label: "Enter Minimum Age", Kind: Number, Default: "30", Min: 15, Max: 45},
			},
			Build: func(v Values) (db.Statement, error) {
				return scorersByAge(v, "min_age", ">=")
			},
		},
		{
			ID:      "players/younger-scorers",
			Section: Players,
			Title:   "Goalscorers Below Certain Age",
			Params: []Param{
				{Name: "max_age", Label: "Enter Maximum Age", Kind: Number, Default: "20", Min: 0, Max: 100},
			},
			Build: func(v Values) (db.Statement, error) {
				return scorersByAge(v, "max_age", "<=")
			},
		},
		{
			ID:      "players/captains",
			Section: Players,
			Title:   "Captains With The Most Goals",
			Build: static(`SELECT P.name Player, T.name Team, COUNT(G.id) Goals
FROM Players_Plays_in_Plays_for P
INNER JOIN Goals_Scored G
ON G.player_id = P.id
INNER JOIN Teams_Owner_Managed_Located T
ON P.t_id = T.id
WHERE P.captain is TRUE
GROUP BY G.player_id, P.name, T.name
ORDER BY Goals DESC;`),
		},
	}
}

// scorersByAge compares player age against the named parameter with op,
// which is one of the fixed operators passed in by the callers above.
func scorersByAge(v Values, param, op string) (db.Statement, error) {
	age, err := v.Int(param)
	if err != nil {
		return db.Statement{}, err
	}
	var p placeholders
	return p.statement(`SELECT P.name player, T.name team, P.age, CAST(COUNT(G.id) AS decimal) totalGoals
FROM Goals_Scored G
INNER JOIN Players_Plays_In_Plays_for P
ON G.player_id = P.id
INNER JOIN Teams_Owner_Managed_Located T
ON P.T_id = T.id
WHERE P.age ` + op + ` ` + p.add(age) + `
GROUP BY G.player_id, P.name, P.age, T.name
ORDER BY totalGoals DESC, P.age DESC;`), nil
}
