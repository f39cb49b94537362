package main

import (
	"log"
	"time"

	"github.com/anoixa/photo-frame/cmd"
	"github.com/anoixa/photo-frame/config"
)

func init() {
	var cstZone = time.FixedZone("CST", 8*3600) // 东八
	time.Local = cstZone
}

func main() {
	log.Printf("photo frame %s (%s)", config.Version, config.CommitHash)
	cmd.Execute()
}
