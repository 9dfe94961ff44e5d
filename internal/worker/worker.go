package worker

import (
	"context"

	"github.com/wilkadeals/locauto/internal/config"
	"github.com/wilkadeals/locauto/internal/helper"
	"github.com/wilkadeals/locauto/internal/repository"
	"github.com/wilkadeals/locauto/internal/smtp"
	"github.com/wilkadeals/locauto/internal/stream"
)

type Worker struct {
	KafkaStream *stream.KafkaStream
	Ctx         context.Context
	Helper      *helper.HelperRepository
	Mailer      smtp.MailerInterface
	Config      *config.Config

	UserRepo        repository.UserRepository
	ReservationRepo repository.ReservationRepository
}

const (
	// reservationCreatedGroupID is used for workers that react to a new booking
	reservationCreatedGroupID = "reservation-created-group"

	// accountReviewedGroupID is used for workers that react to an admin verification decision
	accountReviewedGroupID = "account-reviewed-group"

	// depositReceivedGroupID is used for workers that react to a reconciled deposit
	depositReceivedGroupID = "deposit-received-group"

	// Topics
	// ReservationCreatedTopic carries new bookings so the confirmation email with payment instructions can be sent
	ReservationCreatedTopic = "reservation.created"

	// AccountReviewedTopic carries admin approval/rejection decisions so the client can be emailed
	AccountReviewedTopic = "account.reviewed"

	// DepositReceivedTopic carries reconciled deposits so the booking confirmation email can be sent
	DepositReceivedTopic = "deposit.received"
)

// Our workers typically need access to the event stream, the mailer and
// a couple of repositories. Worker-specific dependencies can be passed
// as arguments to the worker.
func New(wk *Worker) *Worker {
	return &Worker{
		KafkaStream:     wk.KafkaStream,
		Ctx:             wk.Ctx,
		Helper:          wk.Helper,
		Mailer:          wk.Mailer,
		Config:          wk.Config,
		UserRepo:        wk.UserRepo,
		ReservationRepo: wk.ReservationRepo,
	}
}
