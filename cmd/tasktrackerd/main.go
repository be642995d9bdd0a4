package main

import (
	"flag"

	"kyri56xcaesar/task-tracker/internal/webapp"
)

func main() {
	confPath := flag.String("config", ".env", "path to the env config file")
	flag.Parse()

	webapp.InitAndServe(*confPath)
}
