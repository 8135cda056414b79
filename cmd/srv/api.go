package main

import (
	"net/http"

	"github.com/nasalinha/backend/internal/middleware"
	"github.com/nasalinha/backend/pkg/router"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cliCtx *cli.Context) error {
	s.loadAll(cliCtx)
	s.loadRouter()

	c := cors.New(cors.Options{
		AllowedOrigins:   s.configs.ApiServer.AllowCORS,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	s.server = &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: c.Handler(s.router.Handler()),
	}

	s.logger.Infof("Starting api server on %s", s.server.Addr)

	var err error
	if s.configs.ApiServer.Cert != "" && s.configs.ApiServer.Key != "" {
		err = s.server.ListenAndServeTLS(s.configs.ApiServer.Cert, s.configs.ApiServer.Key)
	} else {
		err = s.server.ListenAndServe()
	}

	if err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())

	// Public routes.
	router.POST(s.router, "/register", s.authDomain.Register)
	router.POST(s.router, "/login", s.authDomain.Login)
	router.POST(s.router, "/refresh", s.authDomain.Refresh)
	router.POST(s.router, "/forgotPassword", s.authDomain.ForgotPassword)
	router.POST(s.router, "/resetPassword", s.authDomain.ResetPassword)

	// Authenticated routes.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.NewAuthVerifier())
	router.GET(authRouter, "/getMe", s.userDomain.GetMe)
	router.POST(authRouter, "/createCheckIn", s.checkInDomain.Create)
	router.GET(authRouter, "/getCheckIns", s.checkInDomain.GetList)
	router.GET(authRouter, "/getMyCheckIns", s.checkInDomain.GetMy)
	router.GET(authRouter, "/getRanking", s.statisticDomain.GetRanking)
	router.GET(authRouter, "/getMyRank", s.statisticDomain.GetMyRank)
	router.GET(authRouter, "/getSeasons", s.seasonDomain.GetList)
	router.GET(authRouter, "/getSeason", s.seasonDomain.Get)
	router.GET(authRouter, "/getActiveSeason", s.seasonDomain.GetActive)

	// Admin routes.
	adminRouter := authRouter.Branch()
	adminRouter.Before(middleware.NewOnlyAdmin(s.userRepo))
	router.GET(adminRouter, "/getUsers", s.userDomain.GetList)
	router.GET(adminRouter, "/getUser", s.userDomain.Get)
	router.POST(adminRouter, "/updateUser", s.userDomain.Update)
	router.POST(adminRouter, "/toggleUserActive", s.userDomain.ToggleActive)
	router.POST(adminRouter, "/createSeason", s.seasonDomain.Create)
	router.POST(adminRouter, "/updateSeason", s.seasonDomain.Update)
	router.POST(adminRouter, "/activateSeason", s.seasonDomain.Activate)
	router.POST(adminRouter, "/deactivateSeason", s.seasonDomain.Deactivate)
	router.POST(adminRouter, "/toggleSeasonActive", s.seasonDomain.ToggleActive)
	router.POST(adminRouter, "/deleteSeason", s.seasonDomain.Delete)
	router.POST(adminRouter, "/updateCheckIn", s.checkInDomain.Update)
	router.POST(adminRouter, "/deleteCheckIn", s.checkInDomain.Delete)
	router.POST(adminRouter, "/createPoint", s.pointDomain.Create)
	router.GET(adminRouter, "/getPoints", s.pointDomain.GetList)
	router.GET(adminRouter, "/getPoint", s.pointDomain.Get)
	router.GET(adminRouter, "/getPointByUserAndSeason", s.pointDomain.GetByUserAndSeason)
	router.POST(adminRouter, "/updatePoint", s.pointDomain.Update)
	router.POST(adminRouter, "/deletePoint", s.pointDomain.Delete)

	s.router.Handle("/metrics", promhttp.Handler())
}
