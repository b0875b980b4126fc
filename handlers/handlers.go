package handlers

import (
	"database/sql"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"daymark/auth"
	"daymark/config"
	"daymark/db"
	"daymark/i18n"
	"daymark/models"

	"github.com/dchest/captcha"
	"github.com/gorilla/csrf"
)

func RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/", IndexHandler)
	mux.HandleFunc("/login", LoginHandler)
	mux.HandleFunc("/register", RegisterHandler)
	mux.HandleFunc("/logout", LogoutHandler)
	mux.HandleFunc("/home", HomeHandler)
	mux.HandleFunc("/save-day", SaveDayHandler)
	mux.HandleFunc("/submit-goal-result", SubmitGoalResultHandler)

	// Captcha images for the registration form
	mux.Handle("/captcha/", captcha.Server(captcha.StdWidth, captcha.StdHeight))
}

func IndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if auth.GetUserID(r) != 0 {
		http.Redirect(w, r, "/home", http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "index.html", nil)
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		lang := i18n.DetectLanguage(r)
		ip := getClientIP(r)
		if !loginLimiter.Allow(ip) {
			http.Error(w, i18n.T(lang, "TooManyAttempts"), http.StatusTooManyRequests)
			return
		}

		email := r.FormValue("email")
		password := r.FormValue("heslo")

		user, err := db.GetUserByEmail(email)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			log.Printf("Error looking up user by email: %v", err)
			http.Error(w, i18n.T(lang, "InternalServerError"), http.StatusInternalServerError)
			return
		}

		// Timing attack mitigation: always check a password
		targetHash := user.PasswordHash
		if err != nil {
			targetHash = db.DummyHash
		}
		match := db.CheckPasswordHash(password, targetHash)

		// Unknown email and wrong password look the same to the caller
		if err != nil || !match {
			loginLimiter.RecordFailure(ip)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		loginLimiter.Reset(ip)
		if err := auth.SetSession(w, r, user.ID); err != nil {
			log.Printf("Error establishing session: %v", err)
			http.Error(w, i18n.T(lang, "InternalServerError"), http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/home", http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "login.html", nil)
}

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		lang := i18n.DetectLanguage(r)
		ip := getClientIP(r)
		if !registerLimiter.Allow(ip) {
			http.Error(w, i18n.T(lang, "TooManyAttempts"), http.StatusTooManyRequests)
			return
		}

		email := r.FormValue("email")
		name := r.FormValue("jmeno")
		goalType := r.FormValue("typ")
		goal := r.FormValue("cil")
		password := r.FormValue("heslo")

		if config.AppConfig.CaptchaEnabled &&
			!captcha.VerifyString(r.FormValue("captcha_id"), r.FormValue("captcha_solution")) {
			registerLimiter.RecordFailure(ip)
			renderTemplate(w, r, "register.html", registerViewData(i18n.T(lang, "WrongCaptcha")))
			return
		}

		hashedPassword, err := db.HashPassword(password)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			http.Error(w, i18n.T(lang, "InternalServerError"), http.StatusInternalServerError)
			return
		}

		user, err := db.CreateUser(email, name, goalType, goal, hashedPassword)
		if errors.Is(err, db.ErrEmailTaken) {
			// The UNIQUE constraint is the sole duplicate check. A plain
			// message, not an error status.
			renderTemplate(w, r, "register.html", registerViewData(i18n.T(lang, "EmailAlreadyExists")))
			return
		}
		if err != nil {
			log.Printf("Error during registration: %v", err)
			http.Error(w, i18n.T(lang, "InternalServerError"), http.StatusInternalServerError)
			return
		}

		// Limit account creation rate per IP
		registerLimiter.RecordFailure(ip)

		// Auto-login. The inserted row stays if this fails.
		if err := auth.SetSession(w, r, user.ID); err != nil {
			log.Printf("Error establishing session after registration: %v", err)
			http.Error(w, i18n.T(lang, "InternalServerError"), http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/home", http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "register.html", registerViewData(""))
}

func registerViewData(errMsg string) map[string]any {
	data := map[string]any{"Error": errMsg}
	if config.AppConfig.CaptchaEnabled {
		data["CaptchaID"] = captcha.New()
	}
	return data
}

func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := auth.ClearSession(w, r); err != nil {
		log.Printf("Error clearing session: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserID(r)
	if userID == 0 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	lang := i18n.DetectLanguage(r)

	entries, err := db.EntriesForUser(userID)
	if err != nil {
		log.Printf("Error loading calendar entries: %v", err)
		http.Error(w, i18n.T(lang, "InternalServerError"), http.StatusInternalServerError)
		return
	}
	slots := buildCalendar(userID, entries)

	user, err := db.GetUserByID(userID)
	if err != nil {
		log.Printf("Error loading user profile: %v", err)
		http.Error(w, i18n.T(lang, "InternalServerError"), http.StatusInternalServerError)
		return
	}

	renderTemplate(w, r, "home.html", map[string]any{
		"User":              user,
		"Days":              slots,
		"GoalReachedPrompt": goalReached(slots),
	})
}

func SaveDayHandler(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserID(r)
	if userID == 0 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	lang := i18n.DetectLanguage(r)

	day, err1 := strconv.Atoi(r.FormValue("cislo"))
	motivation, err2 := strconv.Atoi(r.FormValue("motivace"))
	satisfaction, err3 := strconv.Atoi(r.FormValue("spokojenost"))
	if err1 != nil || err2 != nil || err3 != nil {
		http.Error(w, i18n.T(lang, "InvalidDayOrScore"), http.StatusBadRequest)
		return
	}

	entry := models.DayEntry{Day: day, UserID: userID, Motivation: motivation, Satisfaction: satisfaction}
	if err := db.UpsertDayEntry(entry); err != nil {
		log.Printf("Error saving day entry: %v", err)
		http.Error(w, i18n.T(lang, "InternalServerError"), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

func SubmitGoalResultHandler(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserID(r)
	if userID == 0 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	lang := i18n.DetectLanguage(r)

	achieved := r.FormValue("dosazeno") == "true"
	if err := db.SetGoalAchieved(userID, achieved); err != nil {
		log.Printf("Error saving goal result: %v", err)
		http.Error(w, i18n.T(lang, "InternalServerError"), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	lang := i18n.DetectLanguage(r)

	funcMap := template.FuncMap{
		"T": func(key string) string {
			return i18n.T(lang, key)
		},
		"seq": func(from, to int) []int {
			s := make([]int, 0, to-from+1)
			for i := from; i <= to; i++ {
				s = append(s, i)
			}
			return s
		},
	}

	dir := config.AppConfig.TemplatesDir
	tmpl, err := template.New(name).Funcs(funcMap).ParseFiles(dir+"/layout.html", dir+"/"+name)
	if err != nil {
		log.Printf("Error parsing template %s: %v", name, err)
		http.Error(w, i18n.T(lang, "InternalServerError"), http.StatusInternalServerError)
		return
	}

	csrfField := csrf.TemplateField(r)

	if m, ok := data.(map[string]any); ok {
		if _, exists := m["AppName"]; !exists {
			m["AppName"] = config.AppConfig.AppName
		}
		m["Lang"] = lang
		m["csrfField"] = csrfField
	} else if data == nil {
		data = map[string]any{
			"AppName":   config.AppConfig.AppName,
			"Lang":      lang,
			"csrfField": csrfField,
		}
	}

	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		log.Printf("Error executing template %s: %v", name, err)
	}
}
