package emails

import (
	"context"
	"testing"

	"roomstay-backend/internal/application/notify"

	"github.com/stretchr/testify/assert"
)

func TestSend_NoAPIKeyIsNoop(t *testing.T) {
	c := &BrevoClient{}
	err := c.Send(context.Background(), notify.Intent{Type: notify.TypeListingApproved, Email: "x@y.com"})
	assert.NoError(t, err)
}

func TestSend_MissingTargetEmail(t *testing.T) {
	c := &BrevoClient{APIKey: "key"}
	err := c.Send(context.Background(), notify.Intent{Type: notify.TypeNewInquiry})
	assert.Error(t, err)
}

func TestIntentContent_EscapesUserText(t *testing.T) {
	html := intentContent(notify.Intent{
		Type:     notify.TypeListingRejected,
		Fullname: `Owner <script>`,
		Subject:  "Your listing was not approved",
		Body:     `Reason: "bad" & worse`,
		LinkURL:  "https://roomstay.app/listings/1/edit",
	})
	assert.Contains(t, html, "Owner &lt;script&gt;")
	assert.Contains(t, html, "&#34;bad&#34; &amp; worse")
	assert.Contains(t, html, "Review and Edit")
	assert.NotContains(t, html, "<script>")
}

func TestEmailLayout_WrapsContent(t *testing.T) {
	out := EmailLayout("<h1>Hello</h1>")
	assert.Contains(t, out, "<h1>Hello</h1>")
	assert.Contains(t, out, "RoomStay")
}
