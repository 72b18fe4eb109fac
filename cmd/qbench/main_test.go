package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/theapemachine/qbench"
)

func execute(args ...string) (string, error) {
	var out bytes.Buffer

	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-level", "error"))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func lines(out string) []string {
	return strings.Split(strings.TrimSpace(out), "\n")
}

func TestCLI(t *testing.T) {
	Convey("Given the qbench command", t, func() {
		Convey("run should print one noiseless depth", func() {
			out, err := execute("run", "--depth", "2", "--seed", "42")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "2\t1\n")
		})

		Convey("run should reject depths below two", func() {
			_, err := execute("run", "--depth", "1", "--seed", "42")
			So(errors.Is(err, qbench.ErrInvalidArgument), ShouldBeTrue)
		})

		Convey("sweep should default to depths two to nine", func() {
			out, err := execute("sweep", "--seed", "42", "--shots", "64")
			So(err, ShouldBeNil)

			rows := lines(out)
			So(rows, ShouldHaveLength, 8)
			So(rows[0], ShouldStartWith, "2\t")
			So(rows[7], ShouldStartWith, "9\t")
		})

		Convey("sweep should sort explicit depths and honour workers", func() {
			out, err := execute(
				"sweep", "--depths", "5,3", "--workers", "2", "--seed", "1",
				"--shots", "32", "--qubits", "2",
			)
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "3\t1\n5\t1\n")
		})

		Convey("sweep should reject an empty range", func() {
			_, err := execute("sweep", "--min", "6", "--max", "3")
			So(err, ShouldNotBeNil)
		})

		Convey("Noise from a file should lower survival", func() {
			path := filepath.Join(t.TempDir(), "noise.yaml")
			So(os.WriteFile(path, []byte("readout:\n  - qubits: [0]\n    p01: 0.5\n    p10: 0.5\n"), 0o600), ShouldBeNil)

			out, err := execute("run", "--depth", "3", "--seed", "3", "--noise-file", path)
			So(err, ShouldBeNil)
			So(out, ShouldStartWith, "3\t0.")
		})

		Convey("Invalid noise should fail", func() {
			_, err := execute("run", "--readout", "2")
			So(err, ShouldNotBeNil)
		})

		Convey("A config file should supply settings", func() {
			path := filepath.Join(t.TempDir(), "qbench.yaml")
			So(os.WriteFile(path, []byte("seed: 42\ndepth: 4\nshots: 16\n"), 0o600), ShouldBeNil)

			out, err := execute("run", "--config", path)
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "4\t1\n")
		})

		Convey("inspect should list the gates and the recovery", func() {
			out, err := execute("inspect", "--depth", "3", "--seed", "1")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "gate 0: ")
			So(out, ShouldContainSubstring, "gate 1: ")
			So(out, ShouldContainSubstring, "recovery: ")
			So(out, ShouldContainSubstring, "complex128")
		})

		Convey("Three qubits should be refused by the clifford tables", func() {
			_, err := execute("run", "--qubits", "3", "--seed", "1")
			So(err, ShouldNotBeNil)
		})
	})
}
