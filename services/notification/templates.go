package notification

import (
	"fmt"
	"time"

	"redlink/models/bloodbank"
	"redlink/models/user"
)

// OTPMessage renders the one-time code email.
func OTPMessage(to, code string, ttl time.Duration) Message {
	return Message{
		To:      to,
		Subject: "Your OTP for Blood Bank Appointment",
		Body: fmt.Sprintf(`
        <h3>Your OTP for Blood Bank Appointment</h3>
        <p>Your OTP is: <strong>%s</strong></p>
        <p>This OTP will expire in %d minutes.</p>
        <p>Please do not share this OTP with anyone.</p>`,
			code, int(ttl.Minutes())),
	}
}

// AppointmentMessage renders the booking confirmation sent to the blood
// bank's registered contact email.
func AppointmentMessage(bank *bloodbank.BloodBank, donor *user.User, date, timeOfDay string) Message {
	return Message{
		To:      bank.Contact.Email,
		Subject: "New Appointment Booking",
		Body: fmt.Sprintf(`
        <h3>New Appointment Booking</h3>
        <p><strong>Donor Details:</strong></p>
        <ul>
          <li><strong>Name:</strong> %s</li>
          <li><strong>Email:</strong> %s</li>
          <li><strong>Phone:</strong> %s</li>
          <li><strong>Gender:</strong> %s</li>
          <li><strong>Blood Group:</strong> %s</li>
          <li><strong>City:</strong> %s</li>
          <li><strong>State:</strong> %s</li>
          <li><strong>Pincode:</strong> %s</li>
        </ul>
        <p><strong>Appointment Details:</strong></p>
        <ul>
          <li><strong>Date:</strong> %s</li>
          <li><strong>Time:</strong> %s</li>
        </ul>`,
			donor.FullName, donor.Email, donor.Phone, donor.Gender,
			donor.BloodGroup, donor.City, donor.State, donor.Pincode,
			date, timeOfDay),
	}
}

// BloodNeededMessage renders the bulk alert one donor receives when a seeker
// reaches out through the public search page.
func BloodNeededMessage(donor user.User, seekerPhone, seekerArea, seekerMessage string) Message {
	return Message{
		To:      donor.Email,
		Subject: "Urgent: Blood Needed in " + seekerArea,
		Body: fmt.Sprintf(`
        <h3>Blood Needed</h3>
        <p>Hello %s,</p>
        <p>Someone near <strong>%s</strong> is looking for a <strong>%s</strong> donor.</p>
        <p><strong>Message:</strong> %s</p>
        <p><strong>Contact phone:</strong> %s</p>
        <p>If you can help, please reach out directly. Thank you for being a donor.</p>`,
			donor.FullName, seekerArea, donor.BloodGroup, seekerMessage, seekerPhone),
	}
}
