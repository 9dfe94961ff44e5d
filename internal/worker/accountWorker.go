// The verification decision itself is committed synchronously in the
// admin handler. This worker only delivers the approval or rejection
// email afterwards.
package worker

import (
	"encoding/json"
	"log"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/wilkadeals/locauto/internal/handler"
	"github.com/wilkadeals/locauto/internal/stream"
)

func (wk *Worker) AccountReviewedWorker() {
	consumer, err := wk.KafkaStream.CreateConsumer(&stream.StreamConsumer{
		GroupId: accountReviewedGroupID,
		Topic:   AccountReviewedTopic,
	})

	if err != nil {
		log.Fatalf("Error creating consumer: %v", err)
	}
	defer consumer.Close()

	for {
		select {
		case <-wk.Ctx.Done():
			log.Println("AccountReviewedWorker received cancellation signal, shutting down...")
			return
		default:
			event := consumer.Poll(100)
			switch e := event.(type) {
			case *kafka.Message:
				message := e.Value
				var reviewEvent *handler.AccountReviewedEvent
				json.Unmarshal(message, &reviewEvent)

				wk.sendReviewResultEmail(reviewEvent)
			case kafka.Error:
				log.Printf("Error: %v\n", e)
			case *kafka.AssignedPartitions:
				consumer.Assign(e.Partitions)
			case *kafka.RevokedPartitions:
				consumer.Unassign()
			}
		}
	}
}

func (wk *Worker) sendReviewResultEmail(reviewEvent *handler.AccountReviewedEvent) bool {
	user, found, err := wk.UserRepo.GetOne(reviewEvent.UserID)
	if err != nil || !found {
		log.Printf("Error finding client account for review result email: %v", err)
		return false
	}

	template := "account-approved.tmpl"
	if !reviewEvent.Approved {
		template = "account-rejected.tmpl"
	}

	wk.Helper.BackgroundTask(nil, func() error {
		emailData := wk.Helper.NewEmailData()
		emailData["Name"] = user.FullName

		err = wk.Mailer.Send(user.Email, emailData, template)
		if err != nil {
			log.Printf("Error sending review result email: %v", err)
			return err
		}

		return nil
	})

	return true
}
