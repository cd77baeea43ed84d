// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"errors"
	"flag"
	"os"
	"os/user"

	log "github.com/sirupsen/logrus"
)

func init() {
	currentUserName = "unknown"
	if u, err := user.Current(); err == nil {
		currentUserName = u.Username
	}
}

var (
	currentUserName string
	author          = flag.String("author", "", "Set the author of the package when compressing, defaults to the current user")
	version         = flag.Int64("version", 1, "Archive version number to create it with")
	extract         = flag.String("e", "", "Extract the file given")
	compress        = flag.String("c", "", "Compress the given folder")
	dstFile         = flag.String("f", "assets.kar", "Destination file, or directory when extracting")
	list            = flag.String("l", "", "List the contents of the file given")
	silent          = flag.Bool("s", false, "Silent")
)

func main() {
	flag.Parse()
	if *author == "" {
		*author = currentUserName
	}

	var ops int
	for _, op := range []string{*extract, *compress, *list} {
		if op != "" {
			ops++
		}
	}
	if ops > 1 {
		log.WithError(errors.New("only one operation at a time")).Fatal("Invalid arguments")
	}

	var err error
	switch {
	case *compress != "":
		err = compressDirectory(*compress, *dstFile, *author, *version, *silent)
	case *extract != "":
		err = extractArchive(*extract, *dstFile, *silent)
	case *list != "":
		err = listArchive(*list, os.Stdout)
	default:
		flag.PrintDefaults()
	}
	if err != nil {
		log.WithError(err).Fatal("kar failed")
	}
}
