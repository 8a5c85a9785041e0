// Copyright © 2018 One Concern

package model

// Credentials to access the remote artifact store.
//
// ClientName and ProjectName are optional path segments beneath MainBucketPath.
type Credentials struct {
	Server         string
	Username       string
	Password       string
	MainBucketPath string
	ClientName     string
	ProjectName    string
}

// String representation of the credentials, without any secret
func (c Credentials) String() string {
	return c.Username + "@" + c.Server + ProjectBucketPath(c)
}
