package bot

import (
	"fmt"
	"strings"

	"github.com/auto-dns/docker-monitor-bot/internal/domain"
	"github.com/auto-dns/docker-monitor-bot/internal/util"
)

const (
	usageText = "🐳 Docker Monitor Bot Active\n\n" +
		"Commands:\n" +
		"/list - Show all containers\n" +
		"/help - Show this message"
	unauthorizedText = "⛔ Unauthorized access"
	noContainersText = "No containers found"
	listHeader       = "🐳 Containers:"

	// Telegram rejects messages longer than 4096 UTF-16 code units.
	maxMessageLength = 4096
)

func formatContainerLine(c domain.ContainerSnapshot) string {
	line := fmt.Sprintf("• %s (%s) - %s", c.Name, c.ShortID(), c.Status)
	if c.HasHealth() {
		line += fmt.Sprintf(" (%s)", c.Health)
	}
	return line
}

func formatContainerList(containers []domain.ContainerSnapshot) string {
	if len(containers) == 0 {
		return noContainersText
	}
	lines := append([]string{listHeader}, util.Map(containers, formatContainerLine)...)
	return strings.Join(lines, "\n")
}

func formatError(err error) string {
	return fmt.Sprintf("❌ Error: %v", err)
}

// splitMessage breaks text into parts of at most limit UTF-16 code units,
// cutting at line boundaries where it can.
func splitMessage(text string, limit int) []string {
	var (
		parts   []string
		current strings.Builder
		size    int
	)
	flush := func() {
		if current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
			size = 0
		}
	}

	for _, line := range strings.Split(text, "\n") {
		lineSize := utf16Len(line)
		if size > 0 && size+1+lineSize > limit {
			flush()
		}
		if lineSize > limit {
			for _, chunk := range splitLine(line, limit) {
				flush()
				current.WriteString(chunk)
				size = utf16Len(chunk)
			}
			continue
		}
		if size > 0 {
			current.WriteByte('\n')
			size++
		}
		current.WriteString(line)
		size += lineSize
	}
	flush()
	return parts
}

func splitLine(line string, limit int) []string {
	var (
		chunks []string
		start  int
		size   int
	)
	for i, r := range line {
		n := runeUnits(r)
		if size+n > limit {
			chunks = append(chunks, line[start:i])
			start, size = i, 0
		}
		size += n
	}
	return append(chunks, line[start:])
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += runeUnits(r)
	}
	return n
}

func runeUnits(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}
