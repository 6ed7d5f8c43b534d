package catalog

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const (
	idPrefix     = "prod-"
	idSuffixSize = 9
	base36       = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// IDGenerator issues ids for product cards that do not carry one, shaped
// prod-<unix millis>-<9 base36 chars>.
type IDGenerator struct {
	now    func() time.Time
	suffix func() string
}

// NewIDGenerator builds a generator. Nil arguments fall back to time.Now and a
// random base36 suffix.
func NewIDGenerator(now func() time.Time, suffix func() string) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	if suffix == nil {
		suffix = randomSuffix
	}
	return &IDGenerator{now: now, suffix: suffix}
}

func (g *IDGenerator) Next() string {
	return idPrefix + strconv.FormatInt(g.now().UnixMilli(), 10) + "-" + g.suffix()
}

func randomSuffix() string {
	var b strings.Builder
	b.Grow(idSuffixSize)
	for i := 0; i < idSuffixSize; i++ {
		b.WriteByte(base36[rand.Intn(len(base36))])
	}
	return b.String()
}
