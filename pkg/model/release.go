// Copyright © 2018 One Concern

package model

import (
	"fmt"
	"time"

	"github.com/blang/semver"
)

const (
	// InitialReleaseTag is suggested when the repository has no tag yet
	InitialReleaseTag = "0.1.0"

	// ReleaseDateLayout formats release dates in the changelog
	ReleaseDateLayout = "2006-01-02"
)

// ReleaseTag is a normalized semantic version
type ReleaseTag struct {
	raw     string
	version semver.Version
}

// ParseReleaseTag parses a semantic version, and rejects any input which is not
// in its canonical form (e.g. "1.0", "v1.0.0" or " 1.0.0").
func ParseReleaseTag(tag string) (ReleaseTag, error) {
	v, err := semver.Parse(tag)
	if err != nil {
		return ReleaseTag{}, ErrInvalidTag.Wrap(err)
	}
	if v.String() != tag {
		return ReleaseTag{}, ErrInvalidTag.Wrap(fmt.Errorf("%q is not normalized, expected %q", tag, v.String()))
	}
	return ReleaseTag{raw: tag, version: v}, nil
}

// MustParseReleaseTag is like ParseReleaseTag but panics on invalid input
func MustParseReleaseTag(tag string) ReleaseTag {
	t, err := ParseReleaseTag(tag)
	if err != nil {
		panic(err)
	}
	return t
}

// IsValidReleaseTag tells if a tag parses as a semantic version and round-trips verbatim
func IsValidReleaseTag(tag string) bool {
	_, err := ParseReleaseTag(tag)
	return err == nil
}

func (t ReleaseTag) String() string {
	return t.raw
}

// IsZero tells if the tag is unset
func (t ReleaseTag) IsZero() bool {
	return t.raw == ""
}

// GreaterThan compares tags with semantic version precedence
func (t ReleaseTag) GreaterThan(other ReleaseTag) bool {
	return t.version.GT(other.version)
}

// Compare returns -1, 0 or 1 with semantic version precedence
func (t ReleaseTag) Compare(other ReleaseTag) int {
	return t.version.Compare(other.version)
}

// ReleaseRecord is the changelog entry for a release
type ReleaseRecord struct {
	Tag     ReleaseTag
	Message string
	Date    time.Time
}

// Title of the changelog entry
func (r ReleaseRecord) Title() string {
	return ChangelogTitle(r.Tag.String(), r.Date)
}

// Entry renders the changelog entry
func (r ReleaseRecord) Entry() string {
	return r.Title() + "\n" + r.Message + "\n\n"
}

// ChangelogTitle formats the heading of a changelog entry
func ChangelogTitle(tag string, date time.Time) string {
	return fmt.Sprintf("### Version: %s | Released: %s ", tag, date.Format(ReleaseDateLayout))
}
