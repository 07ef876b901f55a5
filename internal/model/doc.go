// Package model defines the core data structures used throughout pls.
//
// # Show
//
// Show is one tracked series: a root directory plus the relative path of
// the episode to play next:
//
//	show := model.NewShow("Bleach", "/media/Bleach", "ep02.mkv", collector)
//	fmt.Println(show.CurrentEpisode())   // /media/Bleach/ep02.mkv
//	prev, ok, _ := show.PreviousEpisode() // /media/Bleach/ep01.mkv, true
//	_ = show.AdvanceToNextEpisode()       // show.Next == "ep03.mkv"
//
// # Episode
//
// Episode carries display information parsed from a file name:
//
//	ep := model.DescribeEpisode("/media/Bleach/Bleach.S01E02.mkv")
//	fmt.Println(ep.Code()) // S01E02
package model
