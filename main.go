package main

import "github.com/killallgit/vad-annotator/cmd"

// @title           VAD Annotator API
// @version         1.0
// @description     Clip listing, audio serving, progress and rating submission for valence, arousal and dominance annotation.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
func main() {
	cmd.Execute()
}
