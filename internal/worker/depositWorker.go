// The deposit flip, payment row and in-app notification commit
// together in the admin handler. This worker sends the booking
// confirmation email once the event lands.
package worker

import (
	"encoding/json"
	"log"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/wilkadeals/locauto/internal/handler"
	"github.com/wilkadeals/locauto/internal/stream"
)

func (wk *Worker) DepositReceivedWorker() {
	consumer, err := wk.KafkaStream.CreateConsumer(&stream.StreamConsumer{
		GroupId: depositReceivedGroupID,
		Topic:   DepositReceivedTopic,
	})

	if err != nil {
		log.Fatalf("Error creating consumer: %v", err)
	}
	defer consumer.Close()

	for {
		select {
		case <-wk.Ctx.Done():
			log.Println("DepositReceivedWorker received cancellation signal, shutting down...")
			return
		default:
			event := consumer.Poll(100)
			switch e := event.(type) {
			case *kafka.Message:
				message := e.Value
				var depositEvent *handler.DepositReceivedEvent
				json.Unmarshal(message, &depositEvent)

				wk.sendDepositConfirmation(depositEvent)
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

func (wk *Worker) sendDepositConfirmation(depositEvent *handler.DepositReceivedEvent) bool {
	user, found, err := wk.UserRepo.GetOne(depositEvent.UserID)
	if err != nil || !found {
		log.Printf("Error finding client account for deposit confirmation: %v", err)
		return false
	}

	reservation, found, err := wk.ReservationRepo.GetOne(depositEvent.ReservationID)
	if err != nil || !found {
		log.Printf("Error finding reservation for deposit confirmation: %v", err)
		return false
	}

	vehicleName := ""
	if reservation.Vehicle != nil {
		vehicleName = reservation.Vehicle.Name
	}

	wk.Helper.BackgroundTask(nil, func() error {
		emailData := wk.Helper.NewEmailData()
		emailData["Name"] = user.FullName
		emailData["VehicleName"] = vehicleName
		emailData["DepositAmount"] = depositEvent.Amount

		err = wk.Mailer.Send(user.Email, emailData, "deposit-received.tmpl")
		if err != nil {
			log.Printf("Error sending deposit confirmation email: %v", err)
			return err
		}

		return nil
	})

	return true
}
