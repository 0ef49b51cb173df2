// services/notifier.go
package services

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"jeweladmin-backend/config"
	"jeweladmin-backend/models"
	"jeweladmin-backend/utils"
)

// EnquiryNotifier sends the customer an SMS when staff respond to their
// enquiry. Disabled entirely when Twilio credentials are absent.
type EnquiryNotifier struct {
	client *twilio.RestClient
	from   string
}

func NewEnquiryNotifier(cfg *config.Config) *EnquiryNotifier {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" {
		return &EnquiryNotifier{}
	}
	return &EnquiryNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		}),
		from: cfg.TwilioPhoneNumber,
	}
}

// Enabled reports whether notifications will actually be sent.
func (n *EnquiryNotifier) Enabled() bool {
	return n.client != nil
}

// NotifyResponded tells the enquiring customer their enquiry has an answer.
// Failures are logged, never propagated; notification is best-effort and must
// not fail the save that triggered it.
func (n *EnquiryNotifier) NotifyResponded(enquiry models.Enquiry, response string) {
	if !n.Enabled() {
		return
	}
	if enquiry.Phone == "" || !utils.ValidatePhone(enquiry.Phone) {
		zap.L().Debug("skipping enquiry notification, no usable phone",
			zap.Int64("enquiry_id", enquiry.ID))
		return
	}

	message := fmt.Sprintf("We have responded to your enquiry about %q: %s", enquiry.ProductTitle, response)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(enquiry.Phone)
	params.SetFrom(n.from)
	params.SetBody(message)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		zap.L().Warn("failed to send enquiry notification",
			zap.Int64("enquiry_id", enquiry.ID), zap.Error(err))
		return
	}
	if resp.Sid != nil {
		zap.L().Info("enquiry notification sent",
			zap.Int64("enquiry_id", enquiry.ID), zap.String("sid", *resp.Sid))
	} else {
		zap.L().Info("enquiry notification sent, no SID returned",
			zap.Int64("enquiry_id", enquiry.ID))
	}
}
