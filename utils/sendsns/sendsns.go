package sendsns

import (
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sns"
)

// SendSNS publishes a notification to the given topic. An empty ARN disables
// alerting and is not an error.
func SendSNS(subject string, message string, snsArn string) error {
	if snsArn == "" {
		return nil
	}
	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))
	svc := sns.New(sess)
	_, err := svc.Publish(&sns.PublishInput{
		Message:  &message,
		TopicArn: &snsArn,
		Subject:  &subject,
	})
	return err
}
