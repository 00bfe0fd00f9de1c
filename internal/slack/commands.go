package slack

import (
	"fmt"
	"strings"
)

type CommandType string

const (
	CmdToday    CommandType = "today"
	CmdTomorrow CommandType = "tomorrow"
	CmdHelp     CommandType = "help"
)

type Command struct {
	Type CommandType
	Raw  string
}

// Parser maps slash-command text onto agenda commands. The day keywords are
// configuration so deployments can localize them (e.g. "aujourdhui"/"demain").
type Parser struct {
	todayWord    string
	tomorrowWord string
}

func NewParser(todayWord, tomorrowWord string) *Parser {
	return &Parser{
		todayWord:    strings.ToLower(todayWord),
		tomorrowWord: strings.ToLower(tomorrowWord),
	}
}

// Parse resolves the command text. No argument means tomorrow's agenda.
func (p *Parser) Parse(text string) (*Command, error) {
	parts := strings.Fields(strings.TrimSpace(text))
	if len(parts) == 0 {
		return &Command{Type: CmdTomorrow, Raw: text}, nil
	}

	cmd := &Command{
		Raw: text,
	}

	switch strings.ToLower(parts[0]) {
	case p.todayWord:
		cmd.Type = CmdToday
	case p.tomorrowWord:
		cmd.Type = CmdTomorrow
	case "help":
		cmd.Type = CmdHelp
	default:
		return nil, fmt.Errorf("mot-clé inconnu : %s", parts[0])
	}

	return cmd, nil
}

func (p *Parser) GetHelpText() string {
	return fmt.Sprintf(`*Commandes disponibles :*

• %s - Affiche le planning de demain
• %s - Affiche le planning d'aujourd'hui
• %s - Affiche le planning de demain (par défaut)
• %s - Affiche cette aide`,
		"`/agenda "+p.tomorrowWord+"`",
		"`/agenda "+p.todayWord+"`",
		"`/agenda`",
		"`/agenda help`",
	)
}
