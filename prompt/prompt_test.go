package prompt

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFilter(t *testing.T) {
	Convey("Given a lecture filename", t, func() {
		name := "CS101 - 2024-03-08 - Lecture 2.1 [Sorting Algorithms]"

		Convey("Scattered letters in order match", func() {
			So(Filter("lec2sort", name, 0), ShouldBeTrue)
			So(Filter("SORTING", name, 0), ShouldBeTrue)
		})

		Convey("Letters out of order do not match", func() {
			So(Filter("graphs", name, 0), ShouldBeFalse)
		})
	})
}

func TestOrdered(t *testing.T) {
	Convey("Chosen options keep the order they were offered in", t, func() {
		options := []string{"a", "b", "c", "d"}
		So(ordered(options, []string{"d", "b"}), ShouldResemble, []string{"b", "d"})
		So(ordered(options, nil), ShouldBeEmpty)
	})
}
