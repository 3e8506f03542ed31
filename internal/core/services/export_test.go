package services

var DefaultBackOff = defaultBackOff
