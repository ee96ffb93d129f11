package main

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/trezcool/elimu/apps"
	echoapi "github.com/trezcool/elimu/apps/api/echo"
)

var nowFunc = time.Now // mockable

func (cli *commandLine) token(sub, email string, ttl time.Duration) error {
	if cli.conf.Auth.JWTSecret == "" {
		return apps.NewArgumentError("", "auth is disabled: no JWT secret configured")
	}

	now := nowFunc()
	claims := &echoapi.Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   sub,
			Audience:  cli.conf.Auth.Audience,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
		Email: email,
	}
	token, err := echoapi.GenerateToken(claims, cli.conf.Auth.JWTSecret)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, token)
	return nil
}
