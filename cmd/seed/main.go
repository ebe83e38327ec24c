package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	doctorRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/doctor"
	patientRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/patient"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AppointmentService/pkg/auth"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Пользователи врачей нумеруются с этого ID, чтобы не пересекаться с пациентами
const doctorUserIDBase = 100000

var specialties = []string{
	"Clínica médica",
	"Cardiología",
	"Dermatología",
	"Pediatría",
	"Traumatología",
	"Ginecología",
	"Oftalmología",
}

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "seed",
		Short: "Development data for SMC-AppointmentService",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config.toml")

	rootCmd.AddCommand(dataCmd(&configPath))
	rootCmd.AddCommand(tokenCmd(&configPath))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func dataCmd(configPath *string) *cobra.Command {
	var doctors, patients int

	cmd := &cobra.Command{
		Use:   "data",
		Short: "Create fake doctors with weekday schedules and patients",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			log, err := logger.New("", cfg.Logs.Level)
			if err != nil {
				return err
			}
			defer log.Close()

			db, err := sql.Open("postgres", cfg.Database.DSN())
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			wrapped := dbmetrics.Wrap(db, nil)
			s := &seeder{
				txManager: txmanager.NewTransactionManager(wrapped),
				doctors:   doctorRepo.NewRepository(wrapped),
				patients:  patientRepo.NewRepository(wrapped),
				schedules: scheduleRepo.NewRepository(wrapped),
				logger:    log,
			}

			if err := s.seedDoctors(ctx, doctors); err != nil {
				return err
			}
			return s.seedPatients(ctx, patients)
		},
	}

	cmd.Flags().IntVar(&doctors, "doctors", 10, "number of doctors")
	cmd.Flags().IntVar(&patients, "patients", 200, "number of patients")

	return cmd
}

func tokenCmd(configPath *string) *cobra.Command {
	var (
		userID int64
		role   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development JWT signed with auth.jwt_secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			if !domain.Role(role).IsValid() {
				return fmt.Errorf("unknown role %q", role)
			}

			token, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, ttl).Issue(userID, role)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 1, "user id (patient id for PATIENT)")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleAdmin), "ADMIN, DOCTOR or PATIENT")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")

	return cmd
}

type seeder struct {
	txManager *txmanager.TransactionManager
	doctors   *doctorRepo.Repository
	patients  *patientRepo.Repository
	schedules *scheduleRepo.Repository
	logger    *logger.Logger
}

func (s *seeder) seedDoctors(ctx context.Context, count int) error {
	s.logger.Info("seeding %d doctors", count)

	for i := 0; i < count; i++ {
		specialty := gofakeit.RandomString(specialties)

		err := s.txManager.Do(ctx, func(ctx context.Context) error {
			doctor, err := s.doctors.Create(ctx, &domain.Doctor{
				UserID:    int64(doctorUserIDBase + i + 1),
				Name:      gofakeit.Name(),
				Specialty: &specialty,
			})
			if err != nil {
				return err
			}

			return s.schedules.CreateMany(ctx, weekdaySchedule(doctor.ID))
		})
		if err != nil {
			return fmt.Errorf("seed doctor %d: %w", i+1, err)
		}
	}

	s.logger.Info("doctors seeded")
	return nil
}

func (s *seeder) seedPatients(ctx context.Context, count int) error {
	s.logger.Info("seeding %d patients", count)

	for i := 0; i < count; i++ {
		email := gofakeit.Email()
		if _, err := s.patients.Create(ctx, &domain.Patient{Name: gofakeit.Name(), Email: &email}); err != nil {
			return fmt.Errorf("seed patient %d: %w", i+1, err)
		}
	}

	s.logger.Info("patients seeded")
	return nil
}

// weekdaySchedule утро с понедельника по пятницу и случайные вечерние смены
func weekdaySchedule(doctorID int64) []*domain.WeeklyScheduleRule {
	rules := make([]*domain.WeeklyScheduleRule, 0, 10)

	for day := time.Monday; day <= time.Friday; day++ {
		rules = append(rules, &domain.WeeklyScheduleRule{
			DoctorID:  doctorID,
			DayOfWeek: day,
			StartTime: types.TimeString("09:00"),
			EndTime:   types.TimeString("13:00"),
		})

		if gofakeit.Bool() {
			rules = append(rules, &domain.WeeklyScheduleRule{
				DoctorID:  doctorID,
				DayOfWeek: day,
				StartTime: types.TimeString("14:00"),
				EndTime:   types.TimeString("18:00"),
			})
		}
	}

	return rules
}
