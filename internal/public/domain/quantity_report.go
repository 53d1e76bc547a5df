package domain

// UserMoodEntries は集計対象期間における1ユーザー分の気分値を投稿順に並べたもの。
type UserMoodEntries struct {
	UserID string
	Moods  []MoodValue
}

// MoodTotal は気分値ごとの人数。
type MoodTotal struct {
	Mood  MoodValue `json:"mood"`
	Total int       `json:"total"`
}

// QuantityReport は会社全体の気分分布。moods は常に全気分値を列順で含む。
type QuantityReport struct {
	TotalUsers int         `json:"totalUsers"`
	Moods      []MoodTotal `json:"moods"`
}

// DominantMood は1ユーザーの投稿列から代表となる気分を1つ選ぶ。
// 出現回数が厳密に最多の値を採用し、同数のときは先に現れた値が勝つ。
// 同数時の扱いは優先度づけではなく、再現性のための決め打ちの規則。
func DominantMood(moods []MoodValue) (MoodValue, bool) {
	counts := make(map[MoodValue]int, len(moods))
	order := make([]MoodValue, 0, len(moods))
	for _, m := range moods {
		if _, seen := counts[m]; !seen {
			order = append(order, m)
		}
		counts[m]++
	}

	var dominant MoodValue
	max := 0
	for _, m := range order {
		if counts[m] > max {
			max = counts[m]
			dominant = m
		}
	}
	if max == 0 {
		return "", false
	}
	return dominant, true
}

// BuildQuantityReport はユーザー別の投稿グループと有効ユーザー数から分布レポートを組み立てる。
// 全気分値のカウンタを0で初期化してから代表気分を集計し、
// 期間内に投稿のないユーザーは normal として数える。
// 無効化済みユーザーの古い投稿が残っている場合は normal が負になり得るが、そのまま返す。
func BuildQuantityReport(grouped []UserMoodEntries, totalUsers int) QuantityReport {
	totals := make(map[MoodValue]int, len(moodValues))
	for _, v := range moodValues {
		totals[v] = 0
	}

	usersWithEntries := 0
	for _, group := range grouped {
		dominant, ok := DominantMood(group.Moods)
		if !ok {
			continue
		}
		totals[dominant]++
		usersWithEntries++
	}

	totals[MoodNormal] += totalUsers - usersWithEntries

	moods := make([]MoodTotal, 0, len(moodValues))
	for _, v := range moodValues {
		moods = append(moods, MoodTotal{Mood: v, Total: totals[v]})
	}
	return QuantityReport{TotalUsers: totalUsers, Moods: moods}
}
