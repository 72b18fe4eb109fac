package qbench

import (
	"math/rand/v2"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerator(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		algebra := newCyclic()
		generator := NewGenerator(1, algebra, WithSeed(42))

		Convey("The sequence followed by the recovery should be the identity", func() {
			for _, m := range []int{1, 2, 5, 17} {
				seq, recovery, err := generator.Generate(m)
				So(err, ShouldBeNil)
				So(seq, ShouldHaveLength, m)

				var acc Operator = step{modulus: 24}
				for _, op := range seq {
					acc, err = acc.Compose(op)
					So(err, ShouldBeNil)
				}

				acc, err = acc.Compose(recovery)
				So(err, ShouldBeNil)
				So(acc.(step).value, ShouldEqual, 0)
			}
		})

		Convey("Every draw should come from the algebra exactly once", func() {
			_, _, err := generator.Generate(6)
			So(err, ShouldBeNil)
			So(algebra.sampleCount(), ShouldEqual, 6)
			So(algebra.identities, ShouldEqual, 1)
		})

		Convey("The same seed should replay the same sequence", func() {
			other := NewGenerator(1, newCyclic(), WithSeed(42))

			a, ra, err := generator.Generate(10)
			So(err, ShouldBeNil)
			b, rb, err := other.Generate(10)
			So(err, ShouldBeNil)

			So(a, ShouldResemble, b)
			So(ra, ShouldResemble, rb)
		})

		Convey("The stream should carry on between calls", func() {
			other := NewGenerator(1, newCyclic(), WithSeed(42))

			first, _, _ := generator.Generate(4)
			second, _, _ := generator.Generate(4)
			both, _, _ := other.Generate(8)

			So(append(first, second...), ShouldResemble, both)
		})

		Convey("An injected stream should be used as is", func() {
			injected := NewGenerator(1, newCyclic(), WithRand(rand.New(rand.NewPCG(42, 0))))

			a, _, _ := generator.Generate(5)
			b, _, _ := injected.Generate(5)
			So(a, ShouldResemble, b)
		})

		Convey("A non-positive length should fail before sampling", func() {
			for _, m := range []int{0, -3} {
				seq, recovery, err := generator.Generate(m)
				So(seq, ShouldBeNil)
				So(recovery, ShouldBeNil)
				So(err, ShouldWrap, ErrInvalidArgument)
			}

			So(algebra.sampleCount(), ShouldEqual, 0)
			So(algebra.identities, ShouldEqual, 0)
		})

		Convey("Sampling errors should be returned unchanged", func() {
			algebra.sampleErr = errBoom

			_, _, err := generator.Generate(3)
			So(err, ShouldEqual, errBoom)
			So(algebra.sampleCount(), ShouldEqual, 1)

			_, err = generator.SampleOne()
			So(err, ShouldEqual, errBoom)
		})
	})

	Convey("Given a generator without qubits", t, func() {
		generator := NewGenerator(0, newCyclic())

		Convey("It should fall back to one qubit", func() {
			So(generator.Qubits(), ShouldEqual, 1)
			So(NewGenerator(-4, newCyclic()).Qubits(), ShouldEqual, 1)
		})

		Convey("It should still generate without a seed", func() {
			seq, _, err := generator.Generate(3)
			So(err, ShouldBeNil)
			So(seq, ShouldHaveLength, 3)
		})
	})
}
