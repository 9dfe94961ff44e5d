// A reservation row is written synchronously when a booking is made.
// This worker picks the event up afterwards and sends the confirmation
// email, repeating the payment instructions so the client can pay the
// deposit from their inbox.
package worker

import (
	"encoding/json"
	"log"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/wilkadeals/locauto/internal/handler"
	"github.com/wilkadeals/locauto/internal/stream"
)

func (wk *Worker) ReservationCreatedWorker() {
	consumer, err := wk.KafkaStream.CreateConsumer(&stream.StreamConsumer{
		GroupId: reservationCreatedGroupID,
		Topic:   ReservationCreatedTopic,
	})

	if err != nil {
		log.Fatalf("Error creating consumer: %v", err)
	}
	defer consumer.Close()

	for {
		select {
		case <-wk.Ctx.Done():
			log.Println("ReservationCreatedWorker received cancellation signal, shutting down...")
			return
		default:
			event := consumer.Poll(100)
			switch e := event.(type) {
			case *kafka.Message:
				message := e.Value
				var reservationEvent *handler.ReservationCreatedEvent
				json.Unmarshal(message, &reservationEvent)

				wk.sendReservationConfirmation(reservationEvent)
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

func (wk *Worker) sendReservationConfirmation(reservationEvent *handler.ReservationCreatedEvent) bool {
	user, found, err := wk.UserRepo.GetOne(reservationEvent.UserID)
	if err != nil || !found {
		log.Printf("Error finding client account for reservation confirmation: %v", err)
		return false
	}

	wk.Helper.BackgroundTask(nil, func() error {
		emailData := wk.Helper.NewEmailData()
		emailData["Name"] = user.FullName
		emailData["VehicleName"] = reservationEvent.VehicleName
		emailData["StartDate"] = reservationEvent.StartDate
		emailData["EndDate"] = reservationEvent.EndDate
		emailData["TotalPrice"] = reservationEvent.TotalPrice
		emailData["DepositAmount"] = reservationEvent.DepositAmount
		emailData["OrangeMoneyNumber"] = wk.Config.Payment.OrangeMoneyNumber
		emailData["WaveNumber"] = wk.Config.Payment.WaveNumber
		emailData["WhatsAppNumber"] = wk.Config.Payment.WhatsAppNumber

		err = wk.Mailer.Send(user.Email, emailData, "reservation-created.tmpl")
		if err != nil {
			log.Printf("Error sending reservation confirmation email: %v", err)
			return err
		}

		return nil
	})

	return true
}
