package service

import (
	"hash/fnv"
)

// heroKickers are the rotating headline kickers shown above the homepage
// hero. The pick is a pure function of the hero's slug so repeated renders
// of the same hero show the same kicker.
var heroKickers = []string{
	"The Rundown",
	"Worth the Trip",
	"Don't Sleep on This",
	"Fresh This Week",
	"Around the Way",
}

// pickKicker deterministically rotates the hero kicker by slug.
func pickKicker(slug string) string {
	if slug == "" {
		return heroKickers[0]
	}
	h := fnv.New32a()
	h.Write([]byte(slug))
	return heroKickers[h.Sum32()%uint32(len(heroKickers))]
}
