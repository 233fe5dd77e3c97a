package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"internship-engine/internal/domain"
	"internship-engine/internal/track"
)

var listCategoriesCommand = &cobra.Command{
	Use:   "list-categories",
	Short: "Print all known category names",
	Run: func(_ *cobra.Command, _ []string) {
		for _, c := range domain.Categories() {
			fmt.Println(string(c))
		}
	},
}

var listTracksCommand = &cobra.Command{
	Use:   "list-tracks",
	Short: "Print all known track names",
	Run: func(_ *cobra.Command, _ []string) {
		for _, tr := range track.Tracks() {
			fmt.Println(string(tr))
		}
	},
}

func init() {
	rootCmd.AddCommand(listCategoriesCommand, listTracksCommand)
}
