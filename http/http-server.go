package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aeiou-exam/backend/auth"
	"github.com/aeiou-exam/backend/exam"
	"github.com/aeiou-exam/backend/httpjson"
	"github.com/aeiou-exam/backend/subm"
	"github.com/aeiou-exam/backend/task"
	"github.com/aeiou-exam/backend/user"
	"github.com/aeiou-exam/backend/userdetail"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
)

// MediaStore stores uploaded files and returns their public URLs.
// Implemented by upload.MediaSrvc.
type MediaStore interface {
	StoreMedia(ctx context.Context, content []byte) (string, error)
}

type HttpServer struct {
	userSrvc   *user.UserSrvc
	detailSrvc *userdetail.DetailSrvc
	taskSrvc   *task.TaskSrvc
	examSrvc   *exam.ExamSrvc
	submSrvc   *subm.SubmissionSrvc
	media      MediaStore

	jwtKey   []byte
	validate *validator.Validate
	router   *chi.Mux
}

type Services struct {
	Users   *user.UserSrvc
	Details *userdetail.DetailSrvc
	Tasks   *task.TaskSrvc
	Exams   *exam.ExamSrvc
	Subms   *subm.SubmissionSrvc
	Media   MediaStore
}

func NewHttpServer(srvcs Services, jwtKey []byte, allowedOrigins []string) *HttpServer {
	router := chi.NewRouter()

	logger := httplog.NewLogger("aeiou", httplog.Options{
		LogLevel:         slog.LevelDebug,
		Concise:          true,
		RequestHeaders:   true,
		MessageFieldName: "message",
	})

	router.Use(httplog.RequestLogger(logger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           3000,
	}))

	router.Use(auth.GetJwtAuthMiddleware(jwtKey))

	server := &HttpServer{
		userSrvc:   srvcs.Users,
		detailSrvc: srvcs.Details,
		taskSrvc:   srvcs.Tasks,
		examSrvc:   srvcs.Exams,
		submSrvc:   srvcs.Subms,
		media:      srvcs.Media,
		jwtKey:     jwtKey,
		validate:   validator.New(),
		router:     router,
	}

	server.routes()

	return server
}

func (httpserver *HttpServer) Start(address string) error {
	return http.ListenAndServe(address, httpserver.router)
}

// Handler exposes the router, mainly for httptest.
func (httpserver *HttpServer) Handler() http.Handler {
	return httpserver.router
}

func (httpserver *HttpServer) routes() {
	r := httpserver.router

	r.Get("/health", httpserver.health)

	r.Post("/auth/register", httpserver.authRegister)
	r.Post("/auth/verify-email", httpserver.authVerifyEmail)
	r.Post("/auth/resend-otp", httpserver.authResendOtp)
	r.Post("/auth/login", httpserver.authLogin)
	r.Post("/auth/google", httpserver.authGoogle)

	r.Get("/exams", httpserver.listExams)
	r.Get("/exams/{examId}", httpserver.getExam)

	r.Group(func(r chi.Router) {
		r.Use(requireRoles(auth.RoleStudent, auth.RoleTeacher, auth.RoleAdmin))
		r.Post("/submissions", httpserver.createSubmission)
		r.Get("/submissions/me", httpserver.mySubmissions)
		r.Post("/profile/details", httpserver.createProfileDetail)
		r.Put("/profile/details", httpserver.updateProfileDetail)
		r.Get("/profile/details", httpserver.getProfileDetail)
	})

	r.Route("/teacher", func(r chi.Router) {
		r.Use(requireRoles(auth.RoleTeacher, auth.RoleAdmin))

		r.Post("/tasks", httpserver.createTask)
		r.Get("/tasks", httpserver.listTasks)
		r.Get("/tasks/{taskId}", httpserver.getTask)
		r.Put("/tasks/{taskId}", httpserver.updateTask)
		r.Delete("/tasks/{taskId}", httpserver.deleteTask)

		r.Post("/exams", httpserver.createExam)
		r.Put("/exams/{examId}", httpserver.updateExam)

		r.Get("/submissions", httpserver.listSubmissions)
		r.Get("/submissions/{submId}", httpserver.getSubmission)
		r.Post("/submissions/{submId}/review", httpserver.reviewSubmission)

		r.Get("/profiles", httpserver.listProfileDetails)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(requireRoles(auth.RoleAdmin))

		r.Post("/teachers", httpserver.createTeacher)
		r.Get("/dashboard", httpserver.adminDashboard)
		r.Get("/users", httpserver.adminListUsers)
	})
}

func (httpserver *HttpServer) health(w http.ResponseWriter, r *http.Request) {
	httpjson.WriteSuccessJson(w, map[string]string{"status": "ok"})
}
