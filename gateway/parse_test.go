package gateway

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Command
	}{
		{"commands", "commands", Command{Kind: Commands}},
		{"commands upper", "COMMANDS", Command{Kind: Commands}},
		{"login", "login alice secret123", Command{Kind: Login, User: "alice", Pass: "secret123"}},
		{"login upper verb", "LOGIN alice secret123", Command{Kind: Login, User: "alice", Pass: "secret123"}},
		{"login case kept", "login Alice SeCrEt", Command{Kind: Login, User: "Alice", Pass: "SeCrEt"}},
		{"login one token", "login alice", Command{Kind: LoginInvalid}},
		{"login bare", "login", Command{Kind: LoginInvalid}},
		{"login extra token", "login alice pass word", Command{Kind: LoginInvalid}},
		{"login glued prefix", "loginfoo a b", Command{Kind: LoginInvalid}},
		{"logout", "logout", Command{Kind: Logout}},
		{"tso", "tso status", Command{Kind: Tso, TsoCommand: "status"}},
		{"tso bare", "tso", Command{Kind: Tso, TsoCommand: ""}},
		{"tso keeps spacing", "tso listds 'a b'  c", Command{Kind: Tso, TsoCommand: "listds 'a b'  c"}},
		{"tso keeps case", "TSO TIME", Command{Kind: Tso, TsoCommand: "TIME"}},
		{"tso leading whitespace", "  tso time", Command{Kind: Tso, TsoCommand: "time"}},
		{"tso single leading space", " tso status", Command{Kind: Tso, TsoCommand: "status"}},
		{"tso leading whitespace bare", "  tso", Command{Kind: Tso, TsoCommand: ""}},
		{"job search", "job search MYJOB", Command{Kind: JobSearch, Prefix: "MYJOB"}},
		{"job search spaced prefix", "job search MY JOB", Command{Kind: JobSearch, Prefix: "MY JOB"}},
		{"job submit", "job submit USER.JCL(IEFBR14)", Command{Kind: JobSubmit, Dataset: "USER.JCL(IEFBR14)"}},
		{"job cancel", "job cancel JOB123 MYJOB", Command{Kind: JobCancel, JobID: "JOB123", JobName: "MYJOB"}},
		{"job cancel extra ignored", "job cancel JOB123 MYJOB trailing junk", Command{Kind: JobCancel, JobID: "JOB123", JobName: "MYJOB"}},
		{"job cancel missing name", "job cancel JOB123", Command{Kind: JobCancel, JobID: "JOB123", JobName: ""}},
		{"job delete", "job delete JOB123 MYJOB", Command{Kind: JobDelete, JobID: "JOB123", JobName: "MYJOB"}},
		{"job sub-verb case", "job CANCEL JOB123 MYJOB", Command{Kind: JobCancel, JobID: "JOB123", JobName: "MYJOB"}},
		{"job unknown sub-verb", "job frobnicate x", Command{Kind: JobInvalid}},
		{"job no args", "job search", Command{Kind: JobInvalid}},
		{"job bare", "job", Command{Kind: JobInvalid}},
		{"job double space", "job  search MYJOB", Command{Kind: JobInvalid}},
		{"unknown", "hello there", Command{Kind: Unknown}},
		{"empty", "", Command{Kind: Unknown}},
		{"whitespace only", "   ", Command{Kind: Unknown}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.body)
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.body, got, tt.want)
			}
		})
	}
}
