package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityKeyPrecedence(t *testing.T) {
	c := Candidate{
		FullName:  "Jane Doe",
		Company:   "Goldman Sachs",
		Title:     "FX Sales Analyst",
		SourceURL: "https://www.linkedin.com/in/janedoe",
		Email:     "jane.doe@gs.com",
	}

	assert.Equal(t, "email:jane.doe@gs.com", c.IdentityKey())

	c.Email = EmailUnknown
	assert.Equal(t, "url:linkedin.com/in/janedoe", c.IdentityKey())

	c.SourceURL = ""
	assert.Equal(t, "who:jane doe|goldman sachs|fx sales analyst", c.IdentityKey())
}

func TestIdentityKeyNormalizesURLVariants(t *testing.T) {
	a := Candidate{Email: EmailUnknown, SourceURL: "https://www.linkedin.com/in/janedoe/"}
	b := Candidate{Email: EmailUnknown, SourceURL: "http://linkedin.com/in/janedoe?trk=feed"}
	assert.Equal(t, a.IdentityKey(), b.IdentityKey())
}

func TestSelectedLevelsOrderAndFilter(t *testing.T) {
	f := Filters{Levels: []Level{LevelMD, LevelUnknown, LevelAnalyst, LevelMD}}
	assert.Equal(t, []Level{LevelAnalyst, LevelMD}, f.SelectedLevels())
}

func TestGatherLimit(t *testing.T) {
	assert.Equal(t, 30, Filters{MaxPerCompany: 5}.GatherLimit())
}
