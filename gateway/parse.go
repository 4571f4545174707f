package gateway

import (
	"regexp"
	"strings"
)

type Kind int

const (
	Unknown Kind = iota
	Commands
	Login
	LoginInvalid
	Logout
	Tso
	JobSearch
	JobSubmit
	JobCancel
	JobDelete
	JobInvalid
)

// Command is the parsed form of one inbound message body. Only the fields
// for the matched kind are set.
type Command struct {
	Kind Kind

	User string // Login
	Pass string // Login

	TsoCommand string // Tso

	Prefix  string // JobSearch
	Dataset string // JobSubmit
	JobID   string // JobCancel, JobDelete
	JobName string // JobCancel, JobDelete
}

var jobPattern = regexp.MustCompile(`(?i)job (search|submit|cancel|delete) (.+)`)

// Parse classifies a message body. Verbs match case-insensitively; argument
// text keeps its case. Anything whose lowercased body starts with "login"
// is parsed with the login grammar, since login must work before any
// credentials exist.
func Parse(body string) Command {
	if strings.HasPrefix(strings.ToLower(body), "login") {
		return parseLogin(body)
	}

	fields := strings.Fields(body)
	if len(fields) == 0 {
		return Command{Kind: Unknown}
	}

	switch strings.ToLower(fields[0]) {
	case "commands":
		return Command{Kind: Commands}
	case "logout":
		return Command{Kind: Logout}
	case "tso":
		// Verb plus one separator consumed; the remainder is the
		// literal command, internal spacing preserved. The offset is
		// taken from where the verb sits, not from 0, so leading
		// whitespace before the verb cannot shift the slice into it.
		cmd := ""
		if end := strings.Index(body, fields[0]) + len(fields[0]) + 1; end < len(body) {
			cmd = body[end:]
		}
		return Command{Kind: Tso, TsoCommand: cmd}
	case "job":
		return parseJob(body)
	default:
		return Command{Kind: Unknown}
	}
}

// parseLogin requires exactly "login <user> <pass>". Neither token may
// contain whitespace, so passwords with embedded spaces are unsupported.
func parseLogin(body string) Command {
	fields := strings.Fields(body)
	if len(fields) != 3 || !strings.EqualFold(fields[0], "login") {
		return Command{Kind: LoginInvalid}
	}
	return Command{Kind: Login, User: fields[1], Pass: fields[2]}
}

func parseJob(body string) Command {
	m := jobPattern.FindStringSubmatch(body)
	if m == nil || len(m) != 3 {
		return Command{Kind: JobInvalid}
	}
	rest := m[2]
	switch strings.ToLower(m[1]) {
	case "search":
		return Command{Kind: JobSearch, Prefix: rest}
	case "submit":
		return Command{Kind: JobSubmit, Dataset: rest}
	case "cancel":
		id, name := splitJobRef(rest)
		return Command{Kind: JobCancel, JobID: id, JobName: name}
	case "delete":
		id, name := splitJobRef(rest)
		return Command{Kind: JobDelete, JobID: id, JobName: name}
	}
	return Command{Kind: JobInvalid}
}

// splitJobRef takes the job id and job name from the first two whitespace
// runs; anything past the second token is ignored. A missing name stays
// empty and the backend rejects the call.
func splitJobRef(rest string) (jobID, jobName string) {
	fields := strings.Fields(rest)
	if len(fields) > 0 {
		jobID = fields[0]
	}
	if len(fields) > 1 {
		jobName = fields[1]
	}
	return jobID, jobName
}
