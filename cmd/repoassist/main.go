// Copyright © 2018 One Concern

package main

import (
	"github.com/oneconcern/repoassist/cmd/repoassist/cmd"
)

func main() {
	cmd.Execute()
}
