// Package seed populates the database with demo users, friendships, and
// message history. Development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"relay/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configure a seeding run.
type Options struct {
	NumUsers    int
	NumMessages int
	ShouldClean bool
}

// Seeder creates demo data through a bound Gorm DB.
type Seeder struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewSeeder returns a Seeder bound to the provided DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // weak randomness is fine for demo data
	return &Seeder{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// ClearAll removes every seeded row. Order matters: messages and friend
// requests reference users.
func (s *Seeder) ClearAll() error {
	log.Println("clearing existing data...")
	for _, table := range []string{"messages", "friend_requests", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Run seeds users, a friendship mesh over them, and message history between
// the friends.
func (s *Seeder) Run(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.CreateUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	log.Printf("created %d users", len(users))

	accepted, err := s.CreateFriendMesh(users)
	if err != nil {
		return fmt.Errorf("seed friendships: %w", err)
	}
	log.Printf("created friendship mesh (%d accepted pairs)", len(accepted))

	count, err := s.CreateMessages(accepted, opts.NumMessages)
	if err != nil {
		return fmt.Errorf("seed messages: %w", err)
	}
	log.Printf("created %d messages", count)

	return nil
}

// CreateUsers persists n demo users. All of them share the credential
// "password123" so they are easy to log in as.
func (s *Seeder) CreateUsers(n int) ([]models.User, error) {
	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		user := models.User{
			Username:   gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
			Email:      gofakeit.Email(),
			Credential: "password123",
			Status:     models.UserStatusOffline,
			CreatedAt:  s.pastTime(90),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// CreateFriendMesh links the users with friend requests in every reachable
// state: most pairs get nothing, some get a PENDING request, some REJECTED,
// and the rest ACCEPTED. Returns the ACCEPTED requests so messages can be
// seeded between actual friends.
func (s *Seeder) CreateFriendMesh(users []models.User) ([]models.FriendRequest, error) {
	var accepted []models.FriendRequest
	for i := range users {
		for j := i + 1; j < len(users); j++ {
			roll := s.r.Float64()
			var status models.FriendRequestStatus
			switch {
			case roll < 0.55:
				continue
			case roll < 0.70:
				status = models.FriendRequestPending
			case roll < 0.80:
				status = models.FriendRequestRejected
			default:
				status = models.FriendRequestAccepted
			}

			sender, receiver := users[i], users[j]
			if s.r.Intn(2) == 0 {
				sender, receiver = receiver, sender
			}
			request := models.FriendRequest{
				SenderID:   sender.ID,
				ReceiverID: receiver.ID,
				Status:     status,
				CreatedAt:  s.pastTime(60),
			}
			if err := s.db.Create(&request).Error; err != nil {
				return nil, err
			}
			if status == models.FriendRequestAccepted {
				accepted = append(accepted, request)
			}
		}
	}
	return accepted, nil
}

// CreateMessages spreads n messages across the accepted pairs, alternating
// direction randomly.
func (s *Seeder) CreateMessages(pairs []models.FriendRequest, n int) (int, error) {
	if len(pairs) == 0 {
		return 0, nil
	}
	created := 0
	for i := 0; i < n; i++ {
		pair := pairs[s.r.Intn(len(pairs))]
		from, to := pair.SenderID, pair.ReceiverID
		if s.r.Intn(2) == 0 {
			from, to = to, from
		}
		message := models.Message{
			SenderID:   from,
			ReceiverID: to,
			Text:       gofakeit.Sentence(s.r.Intn(12) + 3),
			IsRead:     s.r.Intn(3) > 0,
			CreatedAt:  s.pastTime(30),
		}
		if err := s.db.Create(&message).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (s *Seeder) pastTime(maxDays int) time.Time {
	daysBack := s.r.Intn(maxDays)
	hoursBack := s.r.Intn(24)
	minsBack := s.r.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}
