package author

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ZeroPad formats n in decimal, left-padded with zeros to at least width
// characters. Longer representations are returned unchanged.
func ZeroPad(n, width int) string {
	s := strconv.Itoa(n)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// DateParts returns the zero-padded year, month and day of t.
func DateParts(t time.Time) (year, month, day string) {
	return ZeroPad(t.Year(), 4), ZeroPad(int(t.Month()), 2), ZeroPad(t.Day(), 2)
}

const frontMatterTemplate = `---
title: "Untitled"
date: "%s-%s-%s"
draft: true
tags: []
---
`

// BuildFrontMatter returns the header block of a fresh post dated
// year-month-day.
func BuildFrontMatter(year, month, day string) []byte {
	return []byte(fmt.Sprintf(frontMatterTemplate, year, month, day))
}
