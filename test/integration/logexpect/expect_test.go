// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build integration

package logexpect_test

import (
	"encoding/json"
	"log/slog"
	"strings"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/holomush/logexpect/pkg/logexpect"
)

// consoleMessages decodes the JSON lines the console has written so far.
func consoleMessages() []string {
	var msgs []string
	for _, line := range strings.Split(strings.TrimSpace(con.buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		Expect(json.Unmarshal([]byte(line), &entry)).To(Succeed())
		msgs = append(msgs, entry["msg"].(string))
	}
	return msgs
}

var _ = Describe("Expectation helpers driven by GinkgoT", func() {
	It("accepts a warning that was logged", func() {
		logexpect.ExpectWarn(GinkgoT(), func() {
			slog.Warn("deprecated API")
		}, "deprecated")

		Expect(consoleMessages()).To(BeEmpty())
	})

	It("accepts an error channel that stayed quiet while warnings flowed", func() {
		logexpect.ExpectNoError(GinkgoT(), func() {
			slog.Warn("ok")
		})

		Expect(consoleMessages()).To(ConsistOf("ok"))
	})

	It("hands the console back after every helper", func() {
		logexpect.ExpectError(GinkgoT(), func() {
			logexpect.ExpectNoWarn(GinkgoT(), func() {
				slog.Error("inner error")
			})
		}, "inner")

		Expect(slog.Default()).To(BeIdenticalTo(con.logger))

		slog.Warn("after")
		Expect(consoleMessages()).To(ConsistOf("after"))
	})

	It("propagates a panicking callback and still restores", func() {
		Expect(func() {
			logexpect.ExpectNoWarn(GinkgoT(), func() {
				panic("boom")
			})
		}).To(PanicWith("boom"))

		Expect(slog.Default()).To(BeIdenticalTo(con.logger))
	})
})

var _ = Describe("Interception", func() {
	var in *logexpect.Interception

	BeforeEach(func() {
		var err error
		in, err = logexpect.Intercept(logexpect.Error, logexpect.WithPassthrough())
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() {
			Expect(in.Restore()).To(Succeed())
		})
	})

	It("records error calls with their attributes and keeps them visible", func() {
		slog.Error("query failed", "table", "players")

		Expect(in.Count()).To(Equal(1))
		table, ok := in.Calls()[0].Attr("table")
		Expect(ok).To(BeTrue())
		Expect(table.String()).To(Equal("players"))
		Expect(consoleMessages()).To(ConsistOf("query failed"))
	})

	It("rejects a second interception of the same channel", func() {
		_, err := logexpect.Intercept(logexpect.Error)
		Expect(err).To(MatchError(ContainSubstring("already intercepted")))
	})

	It("reports unmet fragments", func() {
		slog.Error("Something failed: bad input")

		Expect(in.Called("bad input")).To(Succeed())
		Expect(in.Called("BAD INPUT")).To(MatchError(ContainSubstring(`"BAD INPUT"`)))
		Expect(in.NotCalled()).To(HaveOccurred())
	})
})
