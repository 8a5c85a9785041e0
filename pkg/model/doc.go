// Package model describes the base objects manipulated by repoassist.
//
// The object model for repoassist is composed of:
//
//  Credentials:
//    The access parameters to the remote artifact store, loaded from a local
//    file that must never be committed.
//
//  Buckets:
//    Named remote directories beneath the project bucket path. A bucket collects
//    every artifact whose file name contains one of its keywords.
//
//  Release tags:
//    Normalized semantic versions, stamped on the repository as annotated tags and
//    recorded in the version file and the changelog.
package model
