package main

import (
	"log"

	"github.com/Rituchoudhary67/Community-Feed/internal/models"
	"github.com/Rituchoudhary67/Community-Feed/internal/repositories"
	"github.com/Rituchoudhary67/Community-Feed/pkg/config"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds the database with sample users, posts, a nested comment thread and
// cross-likes, then reconciles the denormalized counters.
func main() {
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer config.CloseDB(db)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.KarmaEvent{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)

	log.Println("Seeding database...")

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	usernames := []string{"alice", "bob", "charlie", "diana", "eve", "frank"}
	users := make([]*models.User, 0, len(usernames))
	for _, name := range usernames {
		user, err := userRepo.GetUserByEmail(name + "@example.com")
		if err == gorm.ErrRecordNotFound {
			user = &models.User{
				Username: name,
				Email:    name + "@example.com",
				Password: string(hashed),
			}
			if err := userRepo.CreateUser(user); err != nil {
				log.Fatalf("Failed to create user %s: %v", name, err)
			}
		} else if err != nil {
			log.Fatalf("Failed to look up user %s: %v", name, err)
		}
		users = append(users, user)
	}

	postContents := []string{
		"Just shipped a new feature that handles 10k concurrent users. The key was connection pooling + async workers. Happy to share the architecture if anyone's interested!",
		"Hot take: most microservices architectures are over-engineered for teams under 50 people. A well-structured monolith with clear module boundaries serves better 90% of the time.",
		"Finally cracked the N+1 query problem on our comment system. The trick was materialized paths + single-query tree reconstruction.",
		"Looking for recommendations on observability tooling. We're on basic logging but need proper distributed tracing as we scale.",
	}
	posts := make([]*models.Post, 0, len(postContents))
	for i, content := range postContents {
		post := &models.Post{UserID: users[i%len(users)].ID, Content: content}
		if err := postRepo.CreatePost(post); err != nil {
			log.Fatalf("Failed to create post: %v", err)
		}
		posts = append(posts, post)
	}

	// A nested thread on the first post: root -> reply -> nested reply.
	root := &models.Comment{PostID: posts[0].ID, UserID: users[0].ID, Content: "Great write-up, thanks for sharing."}
	if err := commentRepo.CreateComment(root, nil); err != nil {
		log.Fatalf("Failed to create root comment: %v", err)
	}
	reply := &models.Comment{PostID: posts[0].ID, UserID: users[1].ID, Content: "Seconded, would love to see the pooling config."}
	if err := commentRepo.CreateComment(reply, root); err != nil {
		log.Fatalf("Failed to create reply: %v", err)
	}
	nested := &models.Comment{PostID: posts[0].ID, UserID: users[2].ID, Content: "Same here, especially the worker sizing."}
	if err := commentRepo.CreateComment(nested, reply); err != nil {
		log.Fatalf("Failed to create nested reply: %v", err)
	}

	// Cross-likes: everyone but the author likes the first two posts, and the
	// root comment picks up a couple of likes. Toggling through the ledger
	// keeps like rows, karma events and counters consistent.
	for _, post := range posts[:2] {
		for _, user := range users {
			if user.ID == post.UserID {
				continue
			}
			if _, err := likeRepo.ToggleLike(user.ID, models.TargetTypePost, post.ID, post.UserID); err != nil {
				log.Fatalf("Failed to like post %d: %v", post.ID, err)
			}
		}
	}
	for _, user := range users[1:3] {
		if _, err := likeRepo.ToggleLike(user.ID, models.TargetTypeComment, root.ID, root.UserID); err != nil {
			log.Fatalf("Failed to like comment %d: %v", root.ID, err)
		}
	}

	// Repair pass: counters must equal the exact Like row counts.
	for _, post := range posts {
		if _, err := likeRepo.ReconcileLikeCount(models.TargetTypePost, post.ID); err != nil {
			log.Fatalf("Failed to reconcile post %d: %v", post.ID, err)
		}
	}
	for _, comment := range []*models.Comment{root, reply, nested} {
		if _, err := likeRepo.ReconcileLikeCount(models.TargetTypeComment, comment.ID); err != nil {
			log.Fatalf("Failed to reconcile comment %d: %v", comment.ID, err)
		}
	}

	log.Println("Seeding complete.")
}
