package zosmf

import (
	"fmt"
	"net/http"
	"net/url"
)

type Job struct {
	JobID   string `json:"jobid"`
	JobName string `json:"jobname"`
	Status  string `json:"status"`
	RetCode string `json:"retcode"`
}

// StatusText is the return code when the job has finished, otherwise the
// current status.
func (j Job) StatusText() string {
	if j.RetCode != "" {
		return j.RetCode
	}
	return j.Status
}

// SearchJobs lists jobs whose name starts with prefix, across all owners.
// An empty result is not an error.
func (c *Client) SearchJobs(creds Credentials, prefix string) ([]Job, error) {
	path := "/zosmf/restjobs/jobs?owner=*&prefix=" + url.QueryEscape(prefix)
	var jobs []Job
	if err := c.do(creds, http.MethodGet, path, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// SubmitJob submits the JCL in the named dataset and returns the accepted job.
func (c *Client) SubmitJob(creds Credentials, dataset string) (*Job, error) {
	body := map[string]string{"file": fmt.Sprintf("//'%s'", dataset)}
	job := &Job{}
	if err := c.do(creds, http.MethodPut, "/zosmf/restjobs/jobs", body, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (c *Client) CancelJob(creds Credentials, jobID, jobName string) error {
	body := map[string]string{"request": "cancel", "version": "2.0"}
	return c.do(creds, http.MethodPut, jobPath(jobName, jobID), body, nil)
}

func (c *Client) DeleteJob(creds Credentials, jobID, jobName string) error {
	return c.do(creds, http.MethodDelete, jobPath(jobName, jobID), nil, nil)
}

func jobPath(jobName, jobID string) string {
	return fmt.Sprintf("/zosmf/restjobs/jobs/%s/%s", url.PathEscape(jobName), url.PathEscape(jobID))
}
