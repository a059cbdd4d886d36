package seeder

import (
	"github.com/brianvoe/gofakeit/v6"
)

// TextSource supplies arbitrary human-readable text. Results are random and
// need not be unique.
type TextSource interface {
	Word() string
	Sentence() string
}

// FakerText is a TextSource backed by gofakeit.
type FakerText struct {
	faker         *gofakeit.Faker
	sentenceWords int
}

// NewFakerText seeds a faker; seed 0 picks a random seed.
func NewFakerText(seed int64) *FakerText {
	return &FakerText{
		faker:         gofakeit.New(seed),
		sentenceWords: 10,
	}
}

func (t *FakerText) Word() string {
	return t.faker.Word()
}

func (t *FakerText) Sentence() string {
	return t.faker.Sentence(t.sentenceWords)
}
