package repository

import "time"

// SQLite は時刻をオフセット付きの文字列で保存し、比較も文字列で行う。
// 保存する時刻と検索条件の時刻はすべて UTC に揃える

func utc(t time.Time) time.Time {
	return t.UTC()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// nowUTC は gorm の NowFunc (created_at / updated_at の自動設定) に使う
func nowUTC() time.Time {
	return time.Now().UTC()
}
