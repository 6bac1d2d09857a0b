package server

import (
	"strconv"
	"strings"
	"text/template"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NewServer initializes the server
func NewServer(cookieSecret string, movieHandler *MovieHandler) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies(nil)

	// Cookies, used for flash messages only
	store := cookie.NewStore([]byte(cookieSecret))
	router.Use(sessions.Sessions("reelrank-session", store))

	// Add template functions
	router.FuncMap = template.FuncMap{
		"joinStrings": func(sep string, elems ...string) string {
			return strings.Join(lo.Filter(elems, func(elem string, i int) bool {
				return len(elem) > 0
			}), sep)
		},
		"title": cases.Title(language.English).String,
		"rating": func(rating float64) string {
			return strconv.FormatFloat(rating, 'f', 1, 64)
		},
		"releaseYear": func(date string) string {
			return strings.Split(date, "-")[0]
		},
	}

	// Load templates
	router.LoadHTMLGlob("web/templates/**/*")

	// Static files
	router.Static("/static", "./web/static")
	// 404
	router.NoRoute(movieHandler.Error404)

	router.GET("/", movieHandler.GETIndex).
		GET("/add", movieHandler.GETAdd).
		POST("/add", movieHandler.POSTAdd).
		GET("/add_selected", movieHandler.GETAddSelected).
		GET("/edit/:id", movieHandler.GETEdit).
		POST("/edit/:id", movieHandler.POSTEdit).
		GET("/delete/:id", movieHandler.GETDelete).
		POST("/delete/:id", movieHandler.POSTDelete)

	return router
}

// RenderHTML renders HTML pages and adds pending flash messages for templates
func RenderHTML(c *gin.Context, code int, name string, obj gin.H) {
	session := sessions.Default(c)
	if flashes := session.Flashes(); len(flashes) > 0 {
		session.Save()
		if _, set := obj["error"]; !set {
			obj["error"] = flashes[0]
		}
	}
	c.HTML(code, name, obj)
}

// addFlash queues a message displayed on the next rendered page
func addFlash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	session.Save()
}
