package report

import "github.com/hrutik5321/leaguedash/internal/db"

// Cities is the fixed list offered by the city filter.
var Cities = []string{
	"London", "Manchester", "Merseyside", "Birmingham", "Brighton and Hove", "Lancashire",
	"Leicester", "Newcastle", "Norwich", "Southampton", "Watford", "Wolverhampton",
}

func teamReports() []*Report {
	return []*Report{
		{
			ID:      "teams/goals-scored",
			Section: Teams,
			Title:   "Goals Scored By Teams",
			Build: static(`SELECT T.name team, S.gf goals_scored
FROM Standings_Pertain_to S
INNER JOIN Teams_Owner_Managed_Located T
ON S.T_id = T.id
ORDER BY S.gf DESC;`),
			ChartBy: "team",
		},
		{
			ID:      "teams/goals-conceded",
			Section: Teams,
			Title:   "Goals Conceded By Teams",
			Build: static(`SELECT T.name team, S.ga goals_conceded
FROM Standings_Pertain_to S
INNER JOIN Teams_Owner_Managed_Located T
ON S.T_id = T.id
ORDER BY S.ga DESC;`),
			ChartBy: "team",
		},
		{
			ID:      "teams/fewest-losses",
			Section: Teams,
			Title:   "Teams With Fewest Losses",
			Build: static(`SELECT T.name team, S.losses
FROM Standings_Pertain_to S
INNER JOIN Teams_Owner_Managed_Located T
ON S.T_id = T.id
ORDER BY S.losses;`),
			ChartBy: "team",
		},
		{
			ID:      "teams/top-scoring-by-city",
			Section: Teams,
			Title:   "Top GoalScoring Teams From A Given City",
			Params: []Param{
				{Name: "city", Label: "Select A City", Kind: Choice, Options: Cities},
			},
			Build: func(v Values) (db.Statement, error) {
				var p placeholders
				return p.statement(`SELECT T.name team, S.gf goals_scored
FROM Standings_Pertain_to S
INNER JOIN Teams_Owner_Managed_Located T
ON S.T_id = T.id
WHERE T.city = ` + p.add(v.Get("city")) + `
ORDER BY S.gf DESC;`), nil
			},
			ChartBy: "team",
		},
		{
			ID:      "teams/derby-goals",
			Section: Teams,
			Title:   "Avg Goals Scored - Derby Matches vs Non Derby Matches",
			Build: static(`SELECT D.total_Derby_Goals, D.Derby_Goals_per_match, ND.total_Non_Derby_Goals,
ND.Non_Derby_Goals_per_match
FROM
(
	SELECT ROUND(AVG(M.h_score + M.a_score), 2) Derby_Goals_per_match,
	SUM(M.h_score + M.a_score) total_Derby_Goals
	FROM Matches_Held_at M
	INNER JOIN Teams_Owner_Managed_Located H
	ON M.team1_id = H.id
	INNER JOIN Teams_Owner_Managed_Located A
	ON M.team2_id = A.id
	WHERE H.city = A.city
) D,
(
	SELECT ROUND(AVG(M.h_score + M.a_score), 2) Non_Derby_Goals_per_match,
	SUM(M.h_score + M.a_score) total_Non_Derby_Goals
	FROM Matches_Held_at M
	INNER JOIN Teams_Owner_Managed_Located H
	ON M.team1_id = H.id
	INNER JOIN Teams_Owner_Managed_Located A
	ON M.team2_id = A.id
	WHERE H.city != A.city
) ND;`),
			Formats: percent("derby_goals_per_match", "non_derby_goals_per_match"),
		},
		{
			ID:      "teams/penalties",
			Section: Teams,
			Title:   "Top Teams By Number Of Penalties Awarded",
			Build: static(`SELECT T.name team,
SUM(CASE WHEN G.pen THEN 1 ELSE 0 END) num_Penalties,
CAST(COUNT(G.id) as decimal) totalGoals,
100*ROUND(SUM(CASE WHEN G.pen THEN 1.0 ELSE 0.0 END)/CAST(COUNT(G.id) as decimal), 4) percentage_Penalties
FROM Goals_Scored G
INNER JOIN Players_Plays_In_Plays_for P
ON G.player_id = P.id
INNER JOIN Teams_Owner_Managed_Located T
ON P.T_id = T.id
GROUP BY T.id, T.name
ORDER BY percentage_Penalties DESC;`),
			Formats: percent("percentage_penalties"),
		},
		{
			ID:      "teams/clean-sheets",
			Section: Teams,
			Title:   "Teams With Most Clean Sheets",
			Build: static(`SELECT X.Team Team, SUM(X.CleanSheets) CleanSheets, SUM(X.TotalMatches) TotalMatches, 100*ROUND((SUM(X.CleanSheets)/SUM(X.TotalMatches)),4) CleanSheetPercentage
FROM (
SELECT T.Name Team, SUM(CASE WHEN M.a_score = 0 THEN 1 ELSE 0 END) CleanSheets, COUNT(M.id) TotalMatches
FROM Matches_Held_At M
INNER JOIN Teams_Owner_Managed_Located T
ON T.id = M.team1_id
GROUP BY Team
UNION ALL
SELECT T.Name Team, SUM(CASE WHEN M.h_score = 0 THEN 1 ELSE 0 END) CleanSheets, COUNT(M.id) TotalMatches
FROM Matches_Held_At M
INNER JOIN Teams_Owner_Managed_Located T
ON T.id = M.team2_id
GROUP BY Team) X
GROUP BY Team
ORDER BY CleanSheets DESC;`),
			Formats: percent("cleansheetpercentage"),
		},
	}
}
