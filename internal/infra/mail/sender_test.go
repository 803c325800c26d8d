package mail

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func TestSendOutreach(t *testing.T) {
	d := &fakeDialer{}
	sender := NewEmailSenderWithDialer(d, "sam@agency.test")

	err := sender.SendOutreach("owner@acme.com", "Your website", "Hi **there**", "<p>Hi <strong>there</strong></p>")
	require.NoError(t, err)
	require.Len(t, d.sent, 1)

	m := d.sent[0]
	assert.Equal(t, []string{"sam@agency.test"}, m.GetHeader("From"))
	assert.Equal(t, []string{"owner@acme.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Your website"}, m.GetHeader("Subject"))

	var raw bytes.Buffer
	_, err = m.WriteTo(&raw)
	require.NoError(t, err)
	assert.Contains(t, raw.String(), "multipart/alternative")
	assert.Contains(t, raw.String(), "text/html")
}

func TestSendOutreachError(t *testing.T) {
	sender := NewEmailSenderWithDialer(&fakeDialer{err: errors.New("535 auth failed")}, "a@b.c")

	err := sender.SendOutreach("x@y.z", "s", "t", "")
	assert.ErrorContains(t, err, "535 auth failed")
}
