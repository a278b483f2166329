package bitsy

import (
	"math/bits"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPopcount(t *testing.T) {
	Convey("Given arbitrary words", t, func() {
		words := []uint64{0, 1, 0xFFFFFFFFFFFFFFFF, 0xAAAAAAAAAAAAAAAA, 0x8000000000000001}

		Convey("popcount matches bits.OnesCount64", func() {
			for _, w := range words {
				So(popcount(w), ShouldEqual, bits.OnesCount64(w))
			}
		})
	})
}

func TestSetbits(t *testing.T) {
	Convey("Given a range of numSetBits/start pairs", t, func() {
		Convey("setbits(0, start) is always zero", func() {
			So(setbits(0, 0), ShouldEqual, uint64(0))
			So(setbits(0, 10), ShouldEqual, uint64(0))
		})

		Convey("setbits(64, 0) sets every bit", func() {
			So(setbits(64, 0), ShouldEqual, ^uint64(0))
		})

		Convey("setbits(n, start) sets exactly n contiguous bits at start", func() {
			for start := 0; start < 64; start++ {
				for n := 0; n+start <= 64; n++ {
					So(popcount(setbits(n, start)), ShouldEqual, n)
					if n > 0 {
						So(setbits(n, start)>>uint(start)&1, ShouldEqual, uint64(1))
					}
				}
			}
		})
	})
}

func runWordSelectStrategies(t *testing.T, strategy WordSelectStrategy) {
	Convey("Given words with a known set-bit layout", t, func() {
		cases := []uint64{
			0x1, 0x2, 0x3, 0xF0F0F0F0F0F0F0F0, 0xFFFFFFFFFFFFFFFF, 0x8000000000000000,
		}

		Convey("wordSelect1 agrees with a linear scan over every rank", func() {
			for _, w := range cases {
				n := popcount(w)
				for r := 1; r <= n; r++ {
					want := wordSelect1Linear(w, r)
					got := wordSelect1(w, r, strategy)
					So(got, ShouldEqual, want)
				}
			}
		})
	})
}

func TestWordSelect1BinarySearch(t *testing.T) {
	runWordSelectStrategies(t, WordSelectBinarySearch)
}

func TestWordSelect1Linear(t *testing.T) {
	runWordSelectStrategies(t, WordSelectLinear)
}

func TestWordSelect1Auto(t *testing.T) {
	runWordSelectStrategies(t, WordSelectAuto)
}

func TestWordSelect1PDEP(t *testing.T) {
	runWordSelectStrategies(t, WordSelectPDEP)
}
