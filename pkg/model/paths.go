// Copyright © 2018 One Concern

package model

import (
	"path"
	"strings"
)

const separator = "/"

// ProjectBucketPath resolves the remote directory holding all buckets of a project:
//
//	/<main_bucket_path>[/<client_name>][/<project_name>]
//
// Optional segments are omitted when empty.
func ProjectBucketPath(c Credentials) string {
	parts := []string{separator, trimSlashes(c.MainBucketPath)}
	if client := trimSlashes(c.ClientName); client != "" {
		parts = append(parts, client)
	}
	if project := trimSlashes(c.ProjectName); project != "" {
		parts = append(parts, project)
	}
	return path.Join(parts...)
}

// BucketPath is the remote directory of a bucket
func BucketPath(c Credentials, bucketName string) string {
	return path.Join(ProjectBucketPath(c), bucketName)
}

// RemoteFilePath is the remote location of a file stored in a bucket
func RemoteFilePath(c Credentials, bucketName, fileName string) string {
	return path.Join(BucketPath(c, bucketName), path.Base(fileName))
}

// TopSegment returns the first segment of a main bucket path.
//
// This is the anchor directory: it must exist on the remote store before anything
// gets created beneath it.
//
//	TopSegment("main") == "main"
//	TopSegment("a/b/main") == "a"
func TopSegment(mainBucketPath string) string {
	trimmed := trimSlashes(mainBucketPath)
	if i := strings.Index(trimmed, separator); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}

// AnchorPath is the absolute remote path of the anchor directory
func AnchorPath(c Credentials) string {
	return separator + TopSegment(c.MainBucketPath)
}

// PathSegments enumerates every absolute directory from the anchor down to target, inclusive.
//
//	PathSegments("/a/b/c") == []string{"/a", "/a/b", "/a/b/c"}
func PathSegments(target string) []string {
	trimmed := trimSlashes(target)
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(trimmed, separator)
	segments := make([]string, 0, len(parts))
	current := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		current += separator + part
		segments = append(segments, current)
	}
	return segments
}

func trimSlashes(in string) string {
	return strings.Trim(strings.TrimSpace(in), separator)
}
