package sms

import (
	"encoding/xml"
	"fmt"
)

// Response accumulates the synchronous replies for one inbound message and
// renders them as a TwiML document.
type Response struct {
	messages []string
}

func (r *Response) Message(body string) {
	r.messages = append(r.messages, body)
}

func (r *Response) Messages() []string {
	return r.messages
}

func (r *Response) Render() ([]byte, error) {
	doc := twimlResponse{}
	for _, m := range r.messages {
		doc.Messages = append(doc.Messages, twimlMessage{Body: m})
	}
	out, err := xml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("render twiml: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

type twimlResponse struct {
	XMLName  xml.Name       `xml:"Response"`
	Messages []twimlMessage `xml:"Message"`
}

type twimlMessage struct {
	Body string `xml:",chardata"`
}
