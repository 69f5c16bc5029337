package skills

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback while skills are written
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// ✨ LogSkillWritten logs a successfully written skill
func (u *UserLogger) LogSkillWritten(name, path string) {
	msg := fmt.Sprintf("Created skill %s", name)
	pterm.Success.WithPrefix(pterm.Prefix{Text: "✨"}).Println(msg)
	u.log.Info().Str("skill", name).Str("path", path).Msg(msg)
}

// ❌ LogSkillError logs a skill that failed to write
func (u *UserLogger) LogSkillError(name string, err error) {
	msg := fmt.Sprintf("Error writing skill %s", name)
	pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(msg)
	pterm.Error.Println(err)
	u.log.Error().Err(err).Str("skill", name).Msg(msg)
}

// 📦 LogSummary logs where the generated skills ended up
func (u *UserLogger) LogSummary(outputDir string, count int) {
	msg := fmt.Sprintf("Generated %d skills in: %s", count, outputDir)
	pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).Println(msg)
	u.log.Info().Int("skills", count).Str("output", outputDir).Msg(msg)
}
