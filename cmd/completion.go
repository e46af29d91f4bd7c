package cmd

import (
	"flag"

	"github.com/etnz/estate"
	"github.com/etnz/estate/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the commands and flags of c for shell completion.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{},
	}
	c.VisitAll(func(f *flag.Flag) {
		root.Flags[f.Name] = flagPredictor(f.Name)
	})
	c.VisitCommands(func(_ *subcommands.CommandGroup, sc subcommands.Command) {
		fs := flag.NewFlagSet(sc.Name(), flag.ContinueOnError)
		sc.SetFlags(fs)
		sub := &complete.Command{Flags: map[string]complete.Predictor{}}
		fs.VisitAll(func(f *flag.Flag) {
			sub.Flags[f.Name] = flagPredictor(f.Name)
		})
		if sc.Name() == "topic" {
			sub.Args = complete.PredictFunc(func(string) []string {
				topics, _ := docs.GetAllTopics()
				return topics
			})
		}
		root.Sub[sc.Name()] = sub
	})
	return root
}

func flagPredictor(name string) complete.Predictor {
	switch name {
	case "scenario":
		return predict.Files("*.jsonl")
	case "c":
		categories := make(predict.Set, 0, len(estate.Categories))
		for _, c := range estate.Categories {
			categories = append(categories, c.String())
		}
		return categories
	case "discount":
		return predict.Set{"auto", "yes", "no"}
	case "currency":
		return predict.Set{"USD", "AUD", "EUR", "GBP", "NZD"}
	case "f", "v", "check":
		return predict.Nothing
	}
	return predict.Something
}
