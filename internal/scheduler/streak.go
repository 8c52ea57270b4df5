package scheduler

import "iter"

// Streak は新しい順に並んだ評価列から、先頭から連続して合格した回数を数えます。
// 最初の不合格で打ち切り。
func Streak(newestFirst iter.Seq[Rating]) int {
	n := 0
	for r := range newestFirst {
		if !r.Passed() {
			break
		}
		n++
	}
	return n
}

// BestStreak は古い順・新しい順どちらでも使える最長連続合格回数です。
func BestStreak(ratings iter.Seq[Rating]) int {
	best, cur := 0, 0
	for r := range ratings {
		if r.Passed() {
			cur++
			best = max(best, cur)
			continue
		}
		cur = 0
	}
	return best
}
