// internal/scheduler/rating.go
package scheduler

import "fmt"

// Rating は復習時の想起度 (1: 全く思い出せない 〜 5: 完璧)
type Rating int

const (
	Blackout Rating = iota + 1 // 1
	Hard                       // 2
	Fair                       // 3
	Good                       // 4
	Perfect                    // 5
)

// PassingRating 以上なら「思い出せた」とみなす (連続記録・成功率の判定に使用)
const PassingRating = Fair

var ratingNames = [...]string{
	Blackout: "blackout",
	Hard:     "hard",
	Fair:     "fair",
	Good:     "good",
	Perfect:  "perfect",
}

func (r Rating) IsValid() bool {
	return r >= Blackout && r <= Perfect
}

func (r Rating) String() string {
	if r.IsValid() {
		return ratingNames[r]
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// Passed は PassingRating 以上かどうか
func (r Rating) Passed() bool {
	return r >= PassingRating
}

// quality は SM-2 の品質値 (0..4)
func (r Rating) quality() int {
	return int(r) - 1
}
