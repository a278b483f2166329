package bitsy

import (
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/dsalwasser/bitsy/internal/oracle"
)

// testLengths mirrors the length matrix
// original_source/tests/bitvector_rank_test.cpp exercises: a handful of
// boundary lengths around word/block/superblock widths, plus one length
// large enough to span multiple superblocks.
var testLengths = []uint64{0, 1, 63, 64, 65, 511, 512, 513, 16383, 16384, 16385, (1 << 22) + 7}

func fillUniform(bv *BitVector, length uint64, value bool) {
	for pos := uint64(0); pos < length; pos++ {
		bv.SetBit(pos, value)
	}
}

func fillAlternating(bv *BitVector, length uint64, period uint64) {
	for pos := uint64(0); pos < length; pos++ {
		bv.SetBit(pos, pos%period == 0)
	}
}

func fillRandom(bv *BitVector, length uint64, fillRatio float64, seed uint64) {
	gen := newLCG(seed)
	for pos := uint64(0); pos < length; pos++ {
		bv.SetBit(pos, gen.nextFloat() < fillRatio)
	}
}

// lcg is a tiny deterministic pseudo-random generator used only so the
// test payloads are reproducible without depending on math/rand's exact
// stream across Go versions.
type lcg struct{ state uint64 }

func newLCG(seed uint64) *lcg { return &lcg{state: seed + 1} }

func (g *lcg) next() uint64 {
	g.state = g.state*6364136223846793005 + 1442695040888963407
	return g.state
}

func (g *lcg) nextFloat() float64 {
	return float64(g.next()>>11) / float64(1<<53)
}

func checkRankAgainstOracle(bv *BitVector, o *oracle.Oracle, length uint64) {
	var cur uint64
	for pos := uint64(0); pos <= length; pos++ {
		So(bv.Rank1(pos), ShouldEqual, o.Rank1(pos))
		So(bv.Rank0(pos), ShouldEqual, o.Rank0(pos))
		if pos < length {
			So(bv.IsSet(pos), ShouldEqual, o.IsSet(pos))
			cur += boolToUint64(bv.IsSet(pos))
		}
	}
	_ = cur
}

func boolToUint64(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func TestBitVectorUniform(t *testing.T) {
	Convey("Given uniformly all-zero and all-one bit vectors", t, func() {
		for _, length := range testLengths {
			for _, value := range []bool{false, true} {
				bv := New(length)
				fillUniform(bv, length, value)
				bv.Update()

				o := oracle.New(bv)

				Convey(fmt.Sprintf("rank0/rank1 match the oracle (length=%d, value=%v)", length, value), func() {
					checkRankAgainstOracle(bv, o, length)
				})

				bv.Close()
			}
		}
	})
}

func TestBitVectorAlternating(t *testing.T) {
	Convey("Given alternating bit vectors with varying periods", t, func() {
		periods := []uint64{2, 5, 16}

		for _, length := range testLengths {
			for _, period := range periods {
				bv := New(length)
				fillAlternating(bv, length, period)
				bv.Update()

				o := oracle.New(bv)

				Convey(fmt.Sprintf("rank0/rank1 match the oracle (length=%d, period=%d)", length, period), func() {
					checkRankAgainstOracle(bv, o, length)
				})

				bv.Close()
			}
		}
	})
}

func TestBitVectorRandom(t *testing.T) {
	Convey("Given random bit vectors with varying fill ratios and seeds", t, func() {
		fillRatios := []float64{0.1, 0.25, 0.75, 0.9}

		for _, length := range testLengths {
			for _, fillRatio := range fillRatios {
				for seed := uint64(1); seed <= 3; seed++ {
					bv := New(length)
					fillRandom(bv, length, fillRatio, seed)
					bv.Update()

					o := oracle.New(bv)

					Convey(fmt.Sprintf("rank0/rank1 match the oracle (length=%d, fillRatio=%v, seed=%d)", length, fillRatio, seed), func() {
						checkRankAgainstOracle(bv, o, length)
					})

					bv.Close()
				}
			}
		}
	})
}

func TestBitVectorNewFilled(t *testing.T) {
	Convey("Given NewFilled", t, func() {
		for _, length := range []uint64{0, 1, 65, 513} {
			Convey(fmt.Sprintf("all-one vectors have rank1(length) == length (length=%d)", length), func() {
				bv := NewFilled(length, true)
				So(bv.Rank1(length), ShouldEqual, length)
				bv.Close()
			})

			Convey(fmt.Sprintf("all-zero vectors have rank1(length) == 0 (length=%d)", length), func() {
				bv := NewFilled(length, false)
				So(bv.Rank1(length), ShouldEqual, uint64(0))
				bv.Close()
			})
		}
	})
}

func TestBitVectorSetUnset(t *testing.T) {
	Convey("Given a freshly allocated bit vector", t, func() {
		length := uint64(1000)
		bv := New(length)
		fillUniform(bv, length, false)

		Convey("Set/Unset toggle individual bits", func() {
			bv.Set(42)
			So(bv.IsSet(42), ShouldBeTrue)

			bv.Unset(42)
			So(bv.IsSet(42), ShouldBeFalse)

			bv.SetBit(42, true)
			So(bv.IsSet(42), ShouldBeTrue)
		})

		bv.Close()
	})
}

func TestBitVectorConfigEquivalence(t *testing.T) {
	Convey("Given an alternative block/header configuration", t, func() {
		cfg := Config{BlockWidth: 1024, HeaderWidth: 15}

		for _, length := range testLengths {
			bv, err := NewWithConfig(length, cfg)
			So(err, ShouldBeNil)

			fillAlternating(bv, length, 7)
			bv.Update()

			o := oracle.New(bv)

			Convey(fmt.Sprintf("a differently configured bit vector still matches the oracle (length=%d)", length), func() {
				checkRankAgainstOracle(bv, o, length)
			})

			bv.Close()
		}
	})
}

func TestConfigValidation(t *testing.T) {
	Convey("Given invalid configurations", t, func() {
		Convey("an odd block width is rejected", func() {
			_, err := NewWithConfig(10, Config{BlockWidth: 63, HeaderWidth: 14})
			So(err, ShouldNotBeNil)
		})

		Convey("a header width too small for the block width is rejected", func() {
			_, err := NewWithConfig(10, Config{BlockWidth: 512, HeaderWidth: 8})
			So(err, ShouldNotBeNil)
		})
	})
}
