package utils

import (
	"log"
	"time"
)

// LocationKST is the Asia/Seoul location.
var LocationKST = mustLoadKST()

func mustLoadKST() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		log.Fatal("Failed to load location", err)
	}
	return loc
}

// TimeNowKST returns the current time in the Korea Standard Time zone.
func TimeNowKST() time.Time {
	return time.Now().In(LocationKST)
}

// TruncateToDate drops the time-of-day component, keeping the location.
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDate reports whether two times fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
