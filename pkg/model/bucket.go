// Copyright © 2018 One Concern

package model

import "strings"

// Bucket is a named remote directory collecting artifacts by file name keywords
type Bucket struct {
	Name     string   `json:"name" yaml:"name" mapstructure:"name"`
	Keywords []string `json:"keywords" yaml:"keywords" mapstructure:"keywords"`
}

// Matches tells if any keyword of the bucket is a substring of fileName
func (b Bucket) Matches(fileName string) bool {
	for _, keyword := range b.Keywords {
		if keyword != "" && strings.Contains(fileName, keyword) {
			return true
		}
	}
	return false
}

// Buckets is an ordered list of buckets. Order matters when routing a file to a single bucket.
type Buckets []Bucket

// DefaultBuckets holds a single "release" bucket for release packages
func DefaultBuckets() Buckets {
	return Buckets{
		{Name: "release", Keywords: []string{"_release"}},
	}
}

// Match returns the first bucket, in declared order, matching fileName
func (bs Buckets) Match(fileName string) (Bucket, bool) {
	for _, b := range bs {
		if b.Matches(fileName) {
			return b, true
		}
	}
	return Bucket{}, false
}

// MatchAll returns every bucket matching fileName, in declared order
func (bs Buckets) MatchAll(fileName string) Buckets {
	var matched Buckets
	for _, b := range bs {
		if b.Matches(fileName) {
			matched = append(matched, b)
		}
	}
	return matched
}

// Get a bucket by name
func (bs Buckets) Get(name string) (Bucket, bool) {
	for _, b := range bs {
		if b.Name == name {
			return b, true
		}
	}
	return Bucket{}, false
}

// Names of the buckets, in declared order
func (bs Buckets) Names() []string {
	names := make([]string, 0, len(bs))
	for _, b := range bs {
		names = append(names, b.Name)
	}
	return names
}
