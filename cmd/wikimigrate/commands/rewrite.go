package commands

import (
	"fmt"

	"git.home.luguber.info/inful/wikimigrate/internal/linkrewrite"
)

// RewriteCmd implements the 'rewrite' command.
type RewriteCmd struct {
	Dir        string   `arg:"" help:"Wiki working copy to rewrite in place" type:"existingdir"`
	DryRun     bool     `name:"dry-run" help:"Report what would change without writing files"`
	Extensions []string `name:"ext" help:"Document suffixes to visit" default:".md,.markdown" sep:","`
}

func (r *RewriteCmd) Run(g *Global) error {
	rw := linkrewrite.New(
		linkrewrite.WithExtensions(r.Extensions...),
		linkrewrite.WithDryRun(r.DryRun),
		linkrewrite.WithLogger(g.Logger),
	)
	report, err := rw.RewriteDir(r.Dir)
	if err != nil {
		return err
	}

	verb := "updated"
	if r.DryRun {
		verb = "would be updated"
	}
	_, _ = fmt.Fprintf(g.Stdout, "Link conversion completed: %d file(s) %s, %d total replacements.\n",
		report.FilesChanged, verb, report.Replacements)
	return nil
}
