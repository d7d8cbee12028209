package report

func managerReports() []*Report {
	return []*Report{
		{
			ID:      "managers/wins-by-nationality",
			Section: Managers,
			Title:   "Manager Wins By Nationality",
			Build: static(`SELECT X.nationality Manager_Nationality,
STRING_AGG(X.name || ' (' || X.team || ')', ', ' ORDER BY X.name) managers,
SUM(wins) total_wins,
AVG(win_percentage) average_win_percentage
FROM
(
	SELECT M.id, M.name, M.nationality, T.id T_id, T.name team, S.wins,
	100*ROUND(CAST(S.wins AS decimal)/CAST(S.wins + S.losses + S.draws AS decimal), 4) win_percentage
	FROM Managers M
	INNER JOIN Teams_Owner_Managed_Located T
	ON M.id = T.manager_id
	INNER JOIN Standings_Pertain_to S
	ON T.id = S.T_id
) X
GROUP BY X.nationality
ORDER BY AVG(win_percentage) DESC;`),
			Formats: percent("average_win_percentage"),
		},
		{
			ID:      "managers/compatriots",
			Section: Managers,
			Title:   "Managers With Highest Percentage Of Players Of Their Own Nationalities",
			Build: static(`SELECT Y.id, Y.manager_name, Y.team, Y.nationality,
COALESCE(X.cnt_compatriot_players, 0) cnt_compatriot_players,
100*ROUND(CAST(COALESCE(X.cnt_compatriot_players, 0) AS decimal)/CAST(Y.cnt_players AS decimal), 4) compatriot_player_percentage
FROM
(
	SELECT M.id, M.name manager_name, T.name team, M.nationality, COUNT(P.id) cnt_compatriot_players
	FROM Managers M
	LEFT OUTER JOIN Teams_Owner_Managed_Located T
	ON M.id = T.manager_id
	LEFT OUTER JOIN Players_Plays_In_Plays_for P
	ON T.id = P.T_id
	WHERE M.nationality = P.nationality
	GROUP BY M.id, M.name, T.name, M.nationality
) X
RIGHT OUTER JOIN
(
	SELECT M.id, M.name manager_name, T.name team, M.nationality, COUNT(P.id) cnt_players
	FROM Managers M
	LEFT OUTER JOIN Teams_Owner_Managed_Located T
	ON M.id = T.manager_id
	LEFT OUTER JOIN Players_Plays_In_Plays_for P
	ON T.id = P.T_id
	GROUP BY M.id, M.name, T.name, M.nationality
) Y
ON X.id = Y.id
AND X.manager_name = Y.manager_name
AND X.team = Y.team
AND X.nationality = Y.nationality
ORDER BY compatriot_player_percentage DESC;`),
			Formats: percent("compatriot_player_percentage"),
		},
		{
			ID:      "managers/home-away-wins",
			Section: Managers,
			Title:   "Managers With Most Home Wins / Away Wins",
			Build: static(`SELECT X.id, X.manager_name, X.team, X.homeWins, Y.awayWins
FROM
(
	SELECT HM.id, HM.name manager_name, H.name team,
	SUM(CASE WHEN M.h_score > M.a_score THEN 1 ELSE 0 END) homeWins
	FROM Matches_Held_at M
	INNER JOIN Teams_Owner_Managed_Located H
	ON M.team1_id = H.id
	INNER JOIN Managers HM
	ON H.manager_id = HM.id
	GROUP BY HM.id, manager_name, team
) X
LEFT OUTER JOIN
(
	SELECT AM.id, AM.name manager_name, A.name team,
	SUM(CASE WHEN M.h_score < M.a_score THEN 1 ELSE 0 END) awayWins
	FROM Matches_Held_at M
	INNER JOIN Teams_Owner_Managed_Located A
	ON M.team2_id = A.id
	INNER JOIN Managers AM
	ON A.manager_id = AM.id
	GROUP BY AM.id, manager_name, team
) Y
ON X.id = Y.id
AND X.manager_name = Y.manager_name
AND X.team = Y.team
ORDER BY X.homeWins DESC, Y.awayWins DESC;`),
		},
	}
}
