// Package gateway interprets inbound text messages as mainframe commands.
// Authentication state is recomputed from the credential store on every
// message; nothing is cached between messages.
package gateway

import (
	"fmt"
	"strings"

	"mtmgate/db"
	"mtmgate/sms"
	"mtmgate/zosmf"
)

type CredStore interface {
	LookupCreds(number string) (*db.Credential, error)
	StoreCreds(number, user, pass string) error
	RemoveCreds(number string) error
}

type Backend interface {
	SearchJobs(creds zosmf.Credentials, prefix string) ([]zosmf.Job, error)
	SubmitJob(creds zosmf.Credentials, dataset string) (*zosmf.Job, error)
	CancelJob(creds zosmf.Credentials, jobID, jobName string) error
	DeleteJob(creds zosmf.Credentials, jobID, jobName string) error
	IssueTso(creds zosmf.Credentials, command string) (*zosmf.TsoResponse, error)
}

const noCredsPrompt = `I do not have credentials stored for this user! Please enter "login {user} {password}"`

const unknownReply = `Unknown command. Please use one of "commands", "tso", "job", "login", or "logout"`

const helpText = `Commands:
login <user> <pass> - Change login credentials
logout - Delete login credentials
tso <command> - Evaluate a tso command
job search <prefix> - Search jobs
job submit <dsn> - Submit a job
job cancel <id> <name> - Cancel a job
job delete <id> <name> - Delete a job`

type Gateway struct {
	store   CredStore
	backend Backend
	sender  sms.Sender
}

func New(store CredStore, backend Backend, sender sms.Sender) *Gateway {
	return &Gateway{store: store, backend: backend, sender: sender}
}

// Handle processes one inbound message and returns the synchronous reply
// document. Most commands answer with exactly one message in the returned
// response; tso and job search instead deliver their output asynchronously
// through the chunker and leave the response empty. A returned error means
// the store was unreachable and this message could not be handled; it never
// reflects a backend failure, which always becomes reply text.
func (g *Gateway) Handle(from, body string) (*sms.Response, error) {
	resp := &sms.Response{}

	creds, err := g.store.LookupCreds(from)
	if err != nil {
		return nil, fmt.Errorf("lookup credentials: %w", err)
	}

	cmd := Parse(body)

	// Login is the only command reachable without stored credentials.
	if creds == nil && cmd.Kind != Login && cmd.Kind != LoginInvalid {
		resp.Message(noCredsPrompt)
		return resp, nil
	}

	switch cmd.Kind {
	case Login:
		if err := g.store.StoreCreds(from, cmd.User, cmd.Pass); err != nil {
			return nil, fmt.Errorf("store credentials: %w", err)
		}
		resp.Message("Credentials stored!")
	case LoginInvalid:
		resp.Message("Login command format incorrect")
	case Logout:
		if err := g.store.RemoveCreds(from); err != nil {
			return nil, fmt.Errorf("remove credentials: %w", err)
		}
		resp.Message("Credentials removed!")
	case Commands:
		resp.Message(helpText)
	case Tso:
		g.runTso(from, creds, cmd.TsoCommand)
	case JobSearch:
		g.searchJobs(from, creds, cmd.Prefix)
	case JobSubmit:
		resp.Message(g.submitJob(creds, cmd.Dataset))
	case JobCancel:
		resp.Message(g.cancelJob(creds, cmd.JobID, cmd.JobName))
	case JobDelete:
		resp.Message(g.deleteJob(creds, cmd.JobID, cmd.JobName))
	case JobInvalid:
		resp.Message("Job command format invalid!")
	default:
		resp.Message(unknownReply)
	}

	return resp, nil
}

func (g *Gateway) runTso(from string, creds *db.Credential, command string) {
	resp, err := g.backend.IssueTso(backendCreds(creds), command)
	if err != nil {
		sms.Deliver(err.Error(), g.sender, from)
		return
	}
	if !resp.Success {
		sms.Deliver("Error: "+resp.Diagnostic(), g.sender, from)
		return
	}
	sms.Deliver(resp.CommandResponse, g.sender, from)
}

func (g *Gateway) searchJobs(from string, creds *db.Credential, prefix string) {
	jobs, err := g.backend.SearchJobs(backendCreds(creds), prefix)
	if err != nil {
		sms.Deliver(err.Error(), g.sender, from)
		return
	}

	var lines []string
	if len(jobs) == 0 {
		lines = []string{"No jobs found!"}
	} else {
		lines = append(lines, fmt.Sprintf("%d Results:", len(jobs)))
		for _, job := range jobs {
			lines = append(lines, fmt.Sprintf("%s %s %s", job.JobID, job.JobName, job.StatusText()))
		}
	}
	sms.Deliver(strings.Join(lines, "\n"), g.sender, from)
}

func (g *Gateway) submitJob(creds *db.Credential, dataset string) string {
	job, err := g.backend.SubmitJob(backendCreds(creds), dataset)
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("Job %s with name %s created!", job.JobID, job.JobName)
}

func (g *Gateway) cancelJob(creds *db.Credential, jobID, jobName string) string {
	if err := g.backend.CancelJob(backendCreds(creds), jobID, jobName); err != nil {
		return err.Error()
	}
	return "Job cancelled!"
}

func (g *Gateway) deleteJob(creds *db.Credential, jobID, jobName string) string {
	if err := g.backend.DeleteJob(backendCreds(creds), jobID, jobName); err != nil {
		return err.Error()
	}
	return "Job deleted!"
}

func backendCreds(creds *db.Credential) zosmf.Credentials {
	return zosmf.Credentials{User: creds.User, Pass: creds.Pass}
}
