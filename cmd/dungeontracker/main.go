// Command dungeontracker tracks completion of dungeons, towers, world
// events and guild quests, and scores progress into a tier.
package main

import "github.com/papapumpkin/dungeontracker/cmd"

func main() {
	cmd.Execute()
}
