package main

import (
	_ "git.dsvv.ac.in/cs/newsportal/src/admintools"
	_ "git.dsvv.ac.in/cs/newsportal/src/devapi/cmd"
	"git.dsvv.ac.in/cs/newsportal/src/website"
)

func main() {
	website.WebsiteCommand.Execute()
}
