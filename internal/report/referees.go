package report

import "github.com/hrutik5321/leaguedash/internal/db"

func refereeReports() []*Report {
	return []*Report{
		{
			ID:      "referees/home-wins",
			Section: Referees,
			Title:   "Referees With Most Home Win Percentage",
			Build: static(`SELECT R.name referee_name, R.nationality, COUNT(M.id) numMatches,
100*ROUND(SUM(CASE WHEN M.h_score > M.a_score THEN 1.0 ELSE 0.0 END)/CAST(COUNT(M.id) AS decimal), 4) homeWinPercentage,
100*ROUND(SUM(CASE WHEN M.h_score < M.a_score THEN 1.0 ELSE 0.0 END)/CAST(COUNT(M.id) AS decimal), 4) homeLossPercentage,
100*ROUND(SUM(CASE WHEN M.h_score = M.a_score THEN 1.0 ELSE 0.0 END)/CAST(COUNT(M.id) AS decimal), 4) homeDrawPercentage
FROM Matches_Held_at M
INNER JOIN Officiated_by OB
ON M.id = OB.match_id
INNER JOIN Referees R
ON OB.referee_id = R.id
GROUP BY R.id, R.name, R.nationality
ORDER BY homeWinPercentage DESC;`),
			Formats: percent("homewinpercentage", "homelosspercentage", "homedrawpercentage"),
		},
		{
			ID:      "referees/penalties",
			Section: Referees,
			Title:   "Referees With Most Penalties Awarded",
			Build: static(`SELECT R.name referee_name, COUNT(DISTINCT OB.match_id) numMatches,
SUM(CASE WHEN G.pen THEN 1 ELSE 0 END) numPenalties,
100*ROUND(SUM(CASE WHEN G.pen THEN 1.0 ELSE 0.0 END)/CAST(COUNT(DISTINCT OB.match_id) AS decimal), 4) numPenaltiesPercentage
FROM Goals_Scored G
INNER JOIN Officiated_by OB
ON G.match_id = OB.match_id
INNER JOIN Referees R
ON OB.referee_id = R.id
GROUP BY R.id, R.name, R.nationality
ORDER BY numPenaltiesPercentage DESC;`),
			Formats: percent("numpenaltiespercentage"),
		},
		{
			ID:      "referees/home-teams",
			Section: Referees,
			Title:   "Distribution Of Home Teams Officiated By Referees",
			Params: []Param{
				{
					Name:  "referee",
					Label: "Select A Referee",
					Kind:  Choice,
					OptionsQuery: func(Values) db.Statement {
						return db.Statement{SQL: "SELECT name FROM referees ORDER BY name;"}
					},
				},
			},
			Build: func(v Values) (db.Statement, error) {
				var p placeholders
				return p.statement(`SELECT H.name HomeTeam, COUNT(M.id) cntMatch,
SUM(CASE WHEN M.h_score > M.a_score THEN 1 ELSE 0 END) homeWins,
SUM(CASE WHEN M.h_score < M.a_score THEN 1 ELSE 0 END) homeLosses,
SUM(CASE WHEN M.h_score = M.a_score THEN 1 ELSE 0 END) homeDraws
FROM Matches_Held_at M
INNER JOIN Officiated_by OB
ON M.id = OB.match_id
INNER JOIN Referees R
ON OB.referee_id = R.id
INNER JOIN Teams_Owner_Managed_Located H
ON M.team1_id = H.id
WHERE R.name = ` + p.add(v.Get("referee")) + `
GROUP BY R.name, H.name
ORDER BY cntMatch DESC;`), nil
			},
		},
	}
}
