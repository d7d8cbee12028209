package report

func stadiumReports() []*Report {
	return []*Report{
		{
			ID:      "stadiums/goals",
			Section: Stadiums,
			Title:   "Stadiums With Most Goals Scored",
			Build: static(`SELECT St.name stadium_name, T.name team,
SUM(M.h_score) home_goals, SUM(M.a_score) away_goals, SUM(M.h_score + M.a_score) total_goals_scored
FROM Matches_Held_at M
INNER JOIN Stadiums St
ON M.stadium_id = St.id
INNER JOIN Teams_Owner_Managed_Located T
ON M.team1_id = T.id
GROUP BY St.id, St.name, T.name
ORDER BY total_goals_scored DESC;`),
		},
		{
			ID:      "stadiums/home-wins",
			Section: Stadiums,
			Title:   "Stadiums With Max Home Wins",
			Build: static(outcomesByStadium("home", ">", "<")),
			Formats: percent("homewinpercentage", "homelosspercentage", "homedrawpercentage"),
		},
		{
			ID:      "stadiums/away-wins",
			Section: Stadiums,
			Title:   "Stadiums With Max Away Wins",
			Build: static(outcomesByStadium("away", "<", ">")),
			Formats: percent("awaywinpercentage", "awaylosspercentage", "awaydrawpercentage"),
		},
	}
}

// outcomesByStadium reports win, loss and draw rates per stadium from the
// point of view of side. win and loss compare h_score against a_score.
func outcomesByStadium(side, win, loss string) string {
	rate := func(cmp, name string) string {
		return "100*ROUND(SUM(CASE WHEN M.h_score " + cmp + " M.a_score THEN 1.0 ELSE 0.0 END)/CAST(COUNT(M.id) AS decimal), 4) " + side + name + "Percentage"
	}
	return `SELECT St.name stadium_name, T.name team,
` + rate(win, "Win") + `,
` + rate(loss, "Loss") + `,
` + rate("=", "Draw") + `
FROM Matches_Held_at M
INNER JOIN Stadiums St
ON M.stadium_id = St.id
INNER JOIN Teams_Owner_Managed_Located T
ON M.team1_id = T.id
GROUP BY St.id, St.name, T.name
ORDER BY ` + side + `WinPercentage DESC;`
}
