package svnrelease

import (
	"embed"
	"io/fs"

	"github.com/arthur-debert/svnrelease/pkg/cobrax/topics"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// initHelpTopics replaces the help command with one that also serves the
// embedded topics.
func initHelpTopics(rootCmd *cobra.Command) {
	source, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return
	}

	opts := topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}
	if err := topics.InitializeWithOptions(rootCmd, source, opts); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
}
